// Package events distributes order and delivery events to RabbitMQ and to
// riders connected over WebSocket.
package events

import (
	"context"
	"errors"
	"time"
)

const (
	TypeOrderConfirmed   = "order.confirmed"
	TypeOrderAvailable   = "order.available"
	TypeDeliveryAssigned = "delivery.assigned"
	TypeDeliveryUpdated  = "delivery.updated"
)

type Event struct {
	Type    string    `json:"type"`
	OrderID string    `json:"orderId"`
	RiderID string    `json:"riderId,omitempty"`
	Status  string    `json:"status,omitempty"`
	At      time.Time `json:"at"`
	Data    any       `json:"data,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Fanout publishes to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
