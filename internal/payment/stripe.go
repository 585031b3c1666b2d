// Package payment talks to the card and PayPal payment providers.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/MikeMC777/pasto-sano/internal/order"
)

const (
	currency = "eur"
	// MetaOrderID is the session metadata key carrying our order id.
	MetaOrderID = "orderId"

	eventSessionCompleted    = "checkout.session.completed"
	eventAsyncPaymentSuccess = "checkout.session.async_payment_succeeded"
)

var ErrBadSignature = errors.New("invalid webhook signature")

type sessionCreator func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)

// Stripe opens hosted Checkout sessions and verifies webhook deliveries.
type Stripe struct {
	create        sessionCreator
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewStripe(secretKey, webhookSecret, successURL, cancelURL string) *Stripe {
	sc := client.New(secretKey, nil)
	return &Stripe{
		create:        sc.CheckoutSessions.New,
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
	}
}

func (s *Stripe) CreateSession(ctx context.Context, o *order.Order) (string, string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(s.successURL + "?order=" + o.ID),
		CancelURL:         stripe.String(s.cancelURL + "?order=" + o.ID),
		CustomerEmail:     stripe.String(o.Customer.Email),
		ClientReferenceID: stripe.String(o.ID),
		LineItems:         lineItems(o),
	}
	params.Context = ctx
	params.AddMetadata(MetaOrderID, o.ID)

	sess, err := s.create(params)
	if err != nil {
		return "", "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.ID, sess.URL, nil
}

// lineItems lists the cart and the delivery fee. A discounted order is sent
// as a single line with the final total.
func lineItems(o *order.Order) []*stripe.CheckoutSessionLineItemParams {
	if o.DiscountAmount.IsPositive() {
		name := fmt.Sprintf("Ordine Pasto Sano (sconto %s)", o.DiscountCode)
		return []*stripe.CheckoutSessionLineItemParams{line(name, o.Total, 1)}
	}
	out := make([]*stripe.CheckoutSessionLineItemParams, 0, len(o.Items)+1)
	for _, it := range o.Items {
		out = append(out, line(it.Name, it.UnitPrice, it.Quantity))
	}
	if o.Delivery != nil {
		out = append(out, line("Consegna "+o.Delivery.Zone, o.DeliveryCost, 1))
	}
	return out
}

func line(name string, unit decimal.Decimal, qty int) *stripe.CheckoutSessionLineItemParams {
	return &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:    stripe.String(currency),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{Name: stripe.String(name)},
			UnitAmount:  stripe.Int64(cents(unit)),
		},
		Quantity: stripe.Int64(int64(qty)),
	}
}

func cents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CompletedSession is the part of a completed Checkout session we act on.
type CompletedSession struct {
	EventID   string
	SessionID string
	OrderID   string
}

// ParseWebhook verifies the signature and returns the paid session. ok is
// false for event types that need no action and for sessions still unpaid.
func (s *Stripe) ParseWebhook(payload []byte, signature string) (CompletedSession, bool, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return CompletedSession{}, false, fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	switch string(ev.Type) {
	case eventSessionCompleted, eventAsyncPaymentSuccess:
	default:
		return CompletedSession{EventID: ev.ID}, false, nil
	}
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(ev.Data.Raw, &sess); err != nil {
		return CompletedSession{}, false, fmt.Errorf("decode session: %w", err)
	}
	// delayed methods complete the session unpaid; async_payment_succeeded follows
	if sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
		return CompletedSession{EventID: ev.ID}, false, nil
	}
	orderID := sess.Metadata[MetaOrderID]
	if orderID == "" {
		orderID = sess.ClientReferenceID
	}
	if orderID == "" {
		return CompletedSession{}, false, fmt.Errorf("session %s has no order id", sess.ID)
	}
	return CompletedSession{EventID: ev.ID, SessionID: sess.ID, OrderID: orderID}, true, nil
}
