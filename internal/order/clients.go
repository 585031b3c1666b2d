package order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/pasto-sano/internal/delivery"
	"github.com/MikeMC777/pasto-sano/internal/discount"
	"github.com/MikeMC777/pasto-sano/internal/events"
)

// CardGateway opens a hosted card checkout for an order.
type CardGateway interface {
	CreateSession(ctx context.Context, o *Order) (sessionID, url string, err error)
}

// PayPalCapture is what PayPal reports for a completed order. Reference is
// the custom_id (or reference_id) the client put on the purchase unit, which
// must be our order id.
type PayPalCapture struct {
	Amount    decimal.Decimal
	Currency  string
	Reference string
}

// PayPalVerifier looks up a completed PayPal order.
type PayPalVerifier interface {
	Captured(ctx context.Context, paypalOrderID string) (PayPalCapture, error)
}

// RiderDirectory answers the rider questions the delivery workflow asks.
type RiderDirectory interface {
	Candidates(ctx context.Context) ([]delivery.Candidate, error)
	IsActive(ctx context.Context, riderID string) (bool, error)
}

type Discounter interface {
	Check(ctx context.Context, code, email, phone string) (discount.Code, error)
	Use(ctx context.Context, code, email, phone, orderID string) (discount.Code, error)
}

// Notifier tells customers and staff about confirmed orders.
type Notifier interface {
	OrderConfirmed(ctx context.Context, o *Order) error
}

type Publisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

// Ext bundles the collaborators of the order service. Nil members disable
// the corresponding feature.
type Ext struct {
	Riders    RiderDirectory
	Discounts Discounter
	Card      CardGateway
	PayPal    PayPalVerifier
	Notifier  Notifier
	Events    Publisher
}
