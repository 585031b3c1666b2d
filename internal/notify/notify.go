// Package notify tells customers and staff about confirmed orders.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/MikeMC777/pasto-sano/internal/order"
)

type Sender interface {
	OrderConfirmed(ctx context.Context, o *order.Order) error
}

// Multi sends through every sender. Failures are logged and returned joined;
// callers treat notifications as best effort.
type Multi []Sender

func (m Multi) OrderConfirmed(ctx context.Context, o *order.Order) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.OrderConfirmed(ctx, o); err != nil {
			log.Printf("[notify] %T order=%s: %v", s, o.ID, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// summary renders the staff-facing text of an order.
func summary(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nuovo ordine %s\n", o.ID)
	fmt.Fprintf(&b, "Cliente: %s (%s, %s)\n", o.Customer.Name, o.Customer.Phone, o.Customer.Email)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %d x %s %s\n", it.Quantity, it.Name, it.UnitPrice.StringFixed(2))
		if c := it.Combo; c != nil {
			parts := make([]string, 0, 4)
			for _, p := range []string{c.Primo, c.Secondo, c.Contorno, c.Macedonia} {
				if p != "" {
					parts = append(parts, p)
				}
			}
			if len(parts) > 0 {
				fmt.Fprintf(&b, "  (%s)\n", strings.Join(parts, ", "))
			}
		}
	}
	if o.DiscountCode != "" {
		fmt.Fprintf(&b, "Sconto %s: -%s\n", o.DiscountCode, o.DiscountAmount.StringFixed(2))
	}
	if d := o.Delivery; d != nil {
		fmt.Fprintf(&b, "Consegna %s, %s, fascia %s: %s\n", d.Address, d.Zone, d.TimeSlot, d.Cost.StringFixed(2))
	} else {
		fmt.Fprintf(&b, "Ritiro %s\n", o.PickupDate)
	}
	fmt.Fprintf(&b, "Totale: %s EUR (%s)", o.Total.StringFixed(2), o.PaymentMethod)
	return b.String()
}
