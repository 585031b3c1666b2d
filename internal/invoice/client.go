// Package invoice issues invoices for orders through the external
// invoicing API.
package invoice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/pasto-sano/internal/order"
)

var ErrNotConfigured = errors.New("invoicing is not configured")

// Request is the billing data the customer asked the invoice for.
// swagger:model InvoiceRequest
type Request struct {
	OrderID     string `json:"orderId"               binding:"required"`
	CompanyName string `json:"companyName,omitempty" binding:"max=200"`
	VATNumber   string `json:"vatNumber,omitempty"   binding:"omitempty,alphanum,max=20"`
	FiscalCode  string `json:"fiscalCode,omitempty"  binding:"omitempty,alphanum,max=20"`
	Address     string `json:"address,omitempty"     binding:"max=300"`
}

type line struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type document struct {
	Reference   string          `json:"reference"`
	Date        string          `json:"date"`
	Customer    customer        `json:"customer"`
	Lines       []line          `json:"lines"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	PaymentType string          `json:"payment_method"`
}

type customer struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	VATNumber  string `json:"vat_number,omitempty"`
	FiscalCode string `json:"fiscal_code,omitempty"`
	Address    string `json:"address,omitempty"`
}

type Client struct {
	HTTP    *http.Client
	BaseURL string
	Token   string
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
	}
}

// Create posts the invoice document for o and returns the provider id.
func (c *Client) Create(ctx context.Context, o *order.Order, in Request) (string, error) {
	if c.BaseURL == "" {
		return "", ErrNotConfigured
	}
	doc := document{
		Reference: o.ID,
		Date:      o.CreatedAt.Format("2006-01-02"),
		Customer: customer{
			Name:       firstNonEmpty(in.CompanyName, o.Customer.Name),
			Email:      o.Customer.Email,
			VATNumber:  in.VATNumber,
			FiscalCode: in.FiscalCode,
			Address:    firstNonEmpty(in.Address, deliveryAddress(o)),
		},
		Discount:    o.DiscountAmount,
		Total:       o.Total,
		PaymentType: o.PaymentMethod,
	}
	for _, it := range o.Items {
		doc.Lines = append(doc.Lines, line{Description: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	if o.Delivery != nil {
		doc.Lines = append(doc.Lines, line{Description: "Consegna " + o.Delivery.Zone, Quantity: 1, UnitPrice: o.DeliveryCost})
	}

	body, _ := json.Marshal(doc)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/invoices", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create invoice: %s", res.Status)
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func deliveryAddress(o *order.Order) string {
	if o.Delivery == nil {
		return ""
	}
	return o.Delivery.Address
}

func firstNonEmpty(v ...string) string {
	for _, s := range v {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
