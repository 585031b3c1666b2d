package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/pasto-sano/internal/order"
)

// PayPal reads orders from the PayPal REST API with client-credentials auth.
type PayPal struct {
	HTTP     *http.Client
	BaseURL  string
	ClientID string
	Secret   string
}

func NewPayPal(baseURL, clientID, secret string) *PayPal {
	return &PayPal{
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		BaseURL:  strings.TrimRight(baseURL, "/"),
		ClientID: clientID,
		Secret:   secret,
	}
}

type paypalAmount struct {
	Currency string `json:"currency_code"`
	Value    string `json:"value"`
}

type paypalOrder struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		ReferenceID string       `json:"reference_id"`
		CustomID    string       `json:"custom_id"`
		Amount      paypalAmount `json:"amount"`
		Payments    struct {
			Captures []struct {
				Status string       `json:"status"`
				Amount paypalAmount `json:"amount"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

func (p *PayPal) token(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	req.SetBasicAuth(p.ClientID, p.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res, err := p.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal auth: %s", res.Status)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Captured returns the amount, currency and order reference of a COMPLETED
// PayPal order. Completed captures are summed; when PayPal lists none the
// purchase unit amounts are used.
func (p *PayPal) Captured(ctx context.Context, paypalOrderID string) (order.PayPalCapture, error) {
	var none order.PayPalCapture
	tok, err := p.token(ctx)
	if err != nil {
		return none, err
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v2/checkout/orders/%s", p.BaseURL, url.PathEscape(paypalOrderID)), nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	res, err := p.HTTP.Do(req)
	if err != nil {
		return none, err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return none, fmt.Errorf("paypal order %s not found", paypalOrderID)
	default:
		return none, fmt.Errorf("paypal get order: %s", res.Status)
	}

	var o paypalOrder
	if err := json.NewDecoder(res.Body).Decode(&o); err != nil {
		return none, err
	}
	if o.Status != "COMPLETED" {
		return none, fmt.Errorf("paypal order %s is %s", paypalOrderID, o.Status)
	}

	out := order.PayPalCapture{Amount: decimal.Zero}
	add := func(a paypalAmount) error {
		v, err := decimal.NewFromString(a.Value)
		if err != nil {
			return fmt.Errorf("paypal amount %q: %w", a.Value, err)
		}
		if out.Currency != "" && !strings.EqualFold(out.Currency, a.Currency) {
			return fmt.Errorf("paypal order %s mixes %s and %s", paypalOrderID, out.Currency, a.Currency)
		}
		out.Currency = a.Currency
		out.Amount = out.Amount.Add(v)
		return nil
	}

	captured := false
	for _, pu := range o.PurchaseUnits {
		ref := pu.CustomID
		if ref == "" {
			ref = pu.ReferenceID
		}
		if out.Reference != "" && ref != out.Reference {
			return none, fmt.Errorf("paypal order %s references %q and %q", paypalOrderID, out.Reference, ref)
		}
		out.Reference = ref
		for _, c := range pu.Payments.Captures {
			if c.Status != "COMPLETED" {
				continue
			}
			if err := add(c.Amount); err != nil {
				return none, err
			}
			captured = true
		}
	}
	if !captured {
		for _, pu := range o.PurchaseUnits {
			if err := add(pu.Amount); err != nil {
				return none, err
			}
		}
	}
	return out, nil
}
