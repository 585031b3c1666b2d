package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MikeMC777/pasto-sano/internal/order"
)

const EmailJSURL = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJS sends the customer confirmation through an EmailJS template.
type EmailJS struct {
	HTTP       *http.Client
	URL        string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
}

func NewEmailJS(serviceID, templateID, publicKey, privateKey string) *EmailJS {
	return &EmailJS{
		HTTP:       newHTTPClient(),
		URL:        EmailJSURL,
		ServiceID:  serviceID,
		TemplateID: templateID,
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}
}

type emailRequest struct {
	ServiceID   string            `json:"service_id"`
	TemplateID  string            `json:"template_id"`
	UserID      string            `json:"user_id"`
	AccessToken string            `json:"accessToken,omitempty"`
	Params      map[string]string `json:"template_params"`
}

func (e *EmailJS) OrderConfirmed(ctx context.Context, o *order.Order) error {
	items := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, fmt.Sprintf("%d x %s", it.Quantity, it.Name))
	}
	params := map[string]string{
		"to_email":       o.Customer.Email,
		"to_name":        o.Customer.Name,
		"order_id":       o.ID,
		"items":          strings.Join(items, "\n"),
		"total":          o.Total.StringFixed(2),
		"payment_method": o.PaymentMethod,
		"fulfillment":    o.Fulfillment,
	}
	if d := o.Delivery; d != nil {
		params["address"] = d.Address
		params["time_slot"] = d.TimeSlot
	}

	body, _ := json.Marshal(emailRequest{
		ServiceID:   e.ServiceID,
		TemplateID:  e.TemplateID,
		UserID:      e.PublicKey,
		AccessToken: e.PrivateKey,
		Params:      params,
	})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := e.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("emailjs: %s", res.Status)
	}
	return nil
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}
