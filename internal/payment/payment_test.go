package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/MikeMC777/pasto-sano/internal/order"
)

const whsec = "whsec_test"

func sign(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func sampleOrder() *order.Order {
	return &order.Order{
		ID:       "o-1",
		Customer: order.Customer{Email: "mario@example.com"},
		Items: []order.Item{
			{Name: "Combo pranzo", Quantity: 2, UnitPrice: decimal.RequireFromString("9.90")},
		},
		DeliveryCost: decimal.RequireFromString("4.90"),
		Total:        decimal.RequireFromString("24.70"),
		Delivery:     &order.Delivery{Zone: "3-6km"},
	}
}

func TestStripe_CreateSession(t *testing.T) {
	var got *stripe.CheckoutSessionParams
	s := &Stripe{
		successURL: "https://pastosano.example/ok",
		cancelURL:  "https://pastosano.example/ko",
		create: func(p *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
			got = p
			return &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/cs_1"}, nil
		},
	}

	id, url, err := s.CreateSession(context.Background(), sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, "cs_1", id)
	assert.Equal(t, "https://checkout.stripe.com/cs_1", url)

	require.NotNil(t, got)
	assert.Equal(t, "o-1", got.Metadata[MetaOrderID])
	assert.Equal(t, "https://pastosano.example/ok?order=o-1", *got.SuccessURL)
	require.Len(t, got.LineItems, 2)
	assert.Equal(t, int64(990), *got.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, int64(2), *got.LineItems[0].Quantity)
	assert.Equal(t, int64(490), *got.LineItems[1].PriceData.UnitAmount)
}

func TestStripe_DiscountedOrderIsOneLine(t *testing.T) {
	o := sampleOrder()
	o.DiscountCode = "BENVENUTO"
	o.DiscountAmount = decimal.RequireFromString("1.98")
	o.Total = decimal.RequireFromString("22.72")

	items := lineItems(o)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2272), *items[0].PriceData.UnitAmount)
}

func TestStripe_ParseWebhook(t *testing.T) {
	s := &Stripe{webhookSecret: whsec}
	payload := []byte(`{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_1", "object": "checkout.session", "payment_status": "paid", "metadata": {"orderId": "o-1"}}}
	}`)

	got, ok, err := s.ParseWebhook(payload, sign(payload, whsec, time.Now()))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, CompletedSession{EventID: "evt_1", SessionID: "cs_1", OrderID: "o-1"}, got)

	_, _, err = s.ParseWebhook(payload, sign(payload, "whsec_other", time.Now()))
	assert.ErrorIs(t, err, ErrBadSignature)

	other := []byte(`{"id": "evt_2", "object": "event", "type": "charge.refunded", "data": {"object": {}}}`)
	_, ok, err = s.ParseWebhook(other, sign(other, whsec, time.Now()))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStripe_AsyncPaymentWaitsForSuccess(t *testing.T) {
	s := &Stripe{webhookSecret: whsec}
	event := func(id, typ, status string) []byte {
		return []byte(fmt.Sprintf(`{
			"id": %q,
			"object": "event",
			"type": %q,
			"data": {"object": {"id": "cs_2", "object": "checkout.session", "payment_status": %q, "client_reference_id": "o-2"}}
		}`, id, typ, status))
	}

	pending := event("evt_1", eventSessionCompleted, "unpaid")
	_, ok, err := s.ParseWebhook(pending, sign(pending, whsec, time.Now()))
	require.NoError(t, err)
	assert.False(t, ok)

	paid := event("evt_2", eventAsyncPaymentSuccess, "paid")
	got, ok, err := s.ParseWebhook(paid, sign(paid, whsec, time.Now()))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, CompletedSession{EventID: "evt_2", SessionID: "cs_2", OrderID: "o-2"}, got)
}

func newPayPalServer(t *testing.T, status, body string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "cid" || pass != "sec" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer"}`))
	})
	mux.HandleFunc("/v2/checkout/orders/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/v2/checkout/orders/PP-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = fmt.Fprintf(w, body, status)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

const paypalBody = `{
	"id": "PP-1",
	"status": %q,
	"purchase_units": [{
		"reference_id": "default",
		"custom_id": "o-1",
		"amount": {"currency_code": "EUR", "value": "24.70"},
		"payments": {"captures": [{"status": "COMPLETED", "amount": {"currency_code": "EUR", "value": "24.70"}}]}
	}]
}`

func TestPayPal_Captured(t *testing.T) {
	srv := newPayPalServer(t, "COMPLETED", paypalBody)
	pp := NewPayPal(srv.URL, "cid", "sec")

	got, err := pp.Captured(context.Background(), "PP-1")
	require.NoError(t, err)
	assert.Equal(t, "24.70", got.Amount.StringFixed(2))
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, "o-1", got.Reference)

	_, err = pp.Captured(context.Background(), "PP-404")
	assert.Error(t, err)

	bad := NewPayPal(srv.URL, "cid", "wrong")
	_, err = bad.Captured(context.Background(), "PP-1")
	assert.Error(t, err)
}

func TestPayPal_ReferenceFallsBackToReferenceID(t *testing.T) {
	body := `{
	"id": "PP-1",
	"status": %q,
	"purchase_units": [{
		"reference_id": "o-2",
		"amount": {"currency_code": "USD", "value": "10.00"}
	}]
}`
	srv := newPayPalServer(t, "COMPLETED", body)
	got, err := NewPayPal(srv.URL, "cid", "sec").Captured(context.Background(), "PP-1")
	require.NoError(t, err)
	assert.Equal(t, "o-2", got.Reference)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "10.00", got.Amount.StringFixed(2))
}

func TestPayPal_NotCompleted(t *testing.T) {
	srv := newPayPalServer(t, "APPROVED", paypalBody)
	_, err := NewPayPal(srv.URL, "cid", "sec").Captured(context.Background(), "PP-1")
	assert.ErrorContains(t, err, "APPROVED")
}
