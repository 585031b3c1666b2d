package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeMC777/pasto-sano/internal/delivery"
	"github.com/MikeMC777/pasto-sano/internal/events"
)

var (
	ErrInvalidOrder       = errors.New("invalid order")
	ErrAmountMismatch     = errors.New("paid amount does not match order total")
	ErrPaymentUnavailable = errors.New("payment method not available")
	ErrProvider           = errors.New("payment provider error")
	ErrNotAwaitingPayment = errors.New("order is not awaiting this payment")
	ErrPaymentMismatch    = errors.New("payment belongs to another order")
)

const currencyEUR = "EUR"

type Service struct {
	repo Repository
	ext  Ext
	now  func() time.Time
}

func NewService(repo Repository, ext Ext) *Service {
	return &Service{repo: repo, ext: ext, now: time.Now}
}

// build validates the cart and prices it. The returned order is not stored.
func (s *Service) build(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidOrder)
	}
	o := &Order{
		ID: uuid.NewString(),
		Customer: Customer{
			Name:  strings.TrimSpace(req.Customer.Name),
			Phone: strings.TrimSpace(req.Customer.Phone),
			Email: strings.ToLower(strings.TrimSpace(req.Customer.Email)),
		},
		Items:       make([]Item, 0, len(req.Items)),
		Fulfillment: FulfillmentPickup,
		PickupDate:  req.PickupDate,
		Notes:       strings.TrimSpace(req.Notes),
	}
	if o.Customer.Name == "" || o.Customer.Phone == "" || o.Customer.Email == "" {
		return nil, fmt.Errorf("%w: customer name, phone and email are required", ErrInvalidOrder)
	}

	for _, it := range req.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity of %q must be at least 1", ErrInvalidOrder, it.Name)
		}
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: negative price for %q", ErrInvalidOrder, it.Name)
		}
		item := Item{Name: strings.TrimSpace(it.Name), Quantity: it.Quantity, UnitPrice: it.UnitPrice, Combo: it.Combo}
		o.Items = append(o.Items, item)
		o.Subtotal = o.Subtotal.Add(item.LineTotal())
	}

	if req.DeliveryEnabled {
		d := req.Delivery
		if d == nil || strings.TrimSpace(d.Address) == "" {
			return nil, fmt.Errorf("%w: delivery address is required", ErrInvalidOrder)
		}
		if strings.TrimSpace(d.TimeSlot) == "" {
			return nil, fmt.Errorf("%w: delivery time slot is required", ErrInvalidOrder)
		}
		z, err := delivery.ZoneFor(d.DistanceKm)
		if err != nil {
			return nil, err
		}
		o.Fulfillment = FulfillmentDelivery
		o.PickupDate = ""
		o.DeliveryCost = z.Cost
		o.Delivery = &Delivery{
			Address:       strings.TrimSpace(d.Address),
			DistanceKm:    d.DistanceKm,
			Zone:          z.Name,
			Cost:          z.Cost,
			RiderShare:    z.RiderShare,
			PlatformShare: z.PlatformShare,
			TimeSlot:      d.TimeSlot,
			Status:        delivery.StatusPending,
		}
	}

	if code := strings.TrimSpace(req.DiscountCode); code != "" && s.ext.Discounts != nil {
		c, err := s.ext.Discounts.Check(ctx, code, o.Customer.Email, o.Customer.Phone)
		if err != nil {
			return nil, err
		}
		o.DiscountCode = c.Code
		o.DiscountPercent = c.Percent
		o.DiscountAmount = c.Amount(o.Subtotal)
	}

	o.Total = o.Subtotal.Sub(o.DiscountAmount).Add(o.DeliveryCost)
	return o, nil
}

// CreateCash stores a confirmed cash order and runs the confirmation side
// effects.
func (s *Service) CreateCash(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	o, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	o.PaymentMethod = MethodCash
	o.PaymentStatus = PaymentCashOnDelivery
	o.Status = StatusConfirmed
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}
	log.Printf("[order] cash order id=%s total=%s fulfillment=%s", o.ID, o.Total.StringFixed(2), o.Fulfillment)
	return s.afterConfirm(ctx, o), nil
}

// Checkout stores an order awaiting online payment. For card payments it
// also opens the hosted checkout session.
func (s *Service) Checkout(ctx context.Context, req PlaceOrderRequest) (*Order, CheckoutResult, error) {
	method := req.PaymentMethod
	if method == "" {
		method = MethodCard
	}
	switch method {
	case MethodCard:
		if s.ext.Card == nil {
			return nil, CheckoutResult{}, ErrPaymentUnavailable
		}
	case MethodPayPal:
		if s.ext.PayPal == nil {
			return nil, CheckoutResult{}, ErrPaymentUnavailable
		}
	default:
		return nil, CheckoutResult{}, fmt.Errorf("%w: %s orders go through cash-order", ErrInvalidOrder, method)
	}

	o, err := s.build(ctx, req)
	if err != nil {
		return nil, CheckoutResult{}, err
	}
	o.PaymentMethod = method
	o.PaymentStatus = PaymentAwaiting
	o.Status = StatusAwaitingPayment
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, CheckoutResult{}, fmt.Errorf("store order: %w", err)
	}

	res := CheckoutResult{OrderID: o.ID, Total: o.Total}
	if method == MethodCard {
		sid, url, err := s.ext.Card.CreateSession(ctx, o)
		if err != nil {
			return nil, CheckoutResult{}, fmt.Errorf("%w: %v", ErrProvider, err)
		}
		if err := s.repo.SetPaymentRef(ctx, o.ID, sid); err != nil {
			return nil, CheckoutResult{}, fmt.Errorf("store session: %w", err)
		}
		o.PaymentRef = sid
		res.SessionID, res.URL = sid, url
	}
	log.Printf("[order] checkout id=%s method=%s total=%s", o.ID, method, o.Total.StringFixed(2))
	return o, res, nil
}

// ConfirmCard marks a card order paid. A repeated confirmation returns
// ErrAlreadyConfirmed and has no side effects.
func (s *Service) ConfirmCard(ctx context.Context, orderID, sessionID string) (*Order, error) {
	o, err := s.repo.ConfirmPayment(ctx, orderID, PaymentPaid, sessionID)
	if err != nil {
		return nil, err
	}
	log.Printf("[order] card payment confirmed id=%s session=%s", o.ID, sessionID)
	return s.afterConfirm(ctx, o), nil
}

// ConfirmPayPal checks that the PayPal order was made for this order, in
// euro, for the stored total before confirming. A PayPal order already
// recorded on another order is refused by the repository.
func (s *Service) ConfirmPayPal(ctx context.Context, orderID, paypalOrderID string) (*Order, error) {
	if s.ext.PayPal == nil {
		return nil, ErrPaymentUnavailable
	}
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == StatusConfirmed {
		return nil, ErrAlreadyConfirmed
	}
	if o.PaymentMethod != MethodPayPal {
		return nil, ErrNotAwaitingPayment
	}
	paid, err := s.ext.PayPal.Captured(ctx, paypalOrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if paid.Reference != o.ID {
		return nil, fmt.Errorf("%w: paypal order %s references %q", ErrPaymentMismatch, paypalOrderID, paid.Reference)
	}
	if !strings.EqualFold(paid.Currency, currencyEUR) {
		return nil, fmt.Errorf("%w: paid in %q", ErrAmountMismatch, paid.Currency)
	}
	if !paid.Amount.Round(2).Equal(o.Total.Round(2)) {
		return nil, fmt.Errorf("%w: paid %s, due %s", ErrAmountMismatch, paid.Amount.StringFixed(2), o.Total.StringFixed(2))
	}
	o, err = s.repo.ConfirmPayment(ctx, orderID, PaymentPaid, paypalOrderID)
	if err != nil {
		return nil, err
	}
	log.Printf("[order] paypal payment confirmed id=%s paypal=%s", o.ID, paypalOrderID)
	return s.afterConfirm(ctx, o), nil
}

// afterConfirm runs the best-effort side effects of a confirmed order and
// returns the order as last stored.
func (s *Service) afterConfirm(ctx context.Context, o *Order) *Order {
	if o.DiscountCode != "" && s.ext.Discounts != nil {
		if _, err := s.ext.Discounts.Use(ctx, o.DiscountCode, o.Customer.Email, o.Customer.Phone, o.ID); err != nil {
			log.Printf("[order] record discount id=%s code=%s: %v", o.ID, o.DiscountCode, err)
		}
	}
	if s.ext.Notifier != nil {
		if err := s.ext.Notifier.OrderConfirmed(ctx, o); err != nil {
			log.Printf("[order] notify id=%s: %v", o.ID, err)
		}
	}
	s.publish(ctx, events.Event{Type: events.TypeOrderConfirmed, OrderID: o.ID, Data: o})

	if o.Delivery == nil {
		return o
	}
	assigned, err := s.autoAssign(ctx, o)
	if err != nil {
		log.Printf("[order] auto-assign id=%s: %v", o.ID, err)
	}
	if assigned != nil {
		return assigned
	}
	s.publish(ctx, events.Event{Type: events.TypeOrderAvailable, OrderID: o.ID, Status: delivery.StatusPending, Data: o})
	return o
}

// autoAssign gives the order to the least loaded active rider. It returns
// nil without error when no rider is available.
func (s *Service) autoAssign(ctx context.Context, o *Order) (*Order, error) {
	if s.ext.Riders == nil {
		return nil, nil
	}
	cands, err := s.ext.Riders.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	riderID, ok := delivery.PickRider(cands)
	if !ok {
		log.Printf("[order] no active rider for id=%s, left pending", o.ID)
		return nil, nil
	}
	return s.apply(ctx, o, delivery.ActionAssign, riderID, "auto")
}

// AdminAssign puts riderID on the order, replacing a previous assignment.
func (s *Service) AdminAssign(ctx context.Context, orderID, riderID string) (*Order, error) {
	if err := s.requireActive(ctx, riderID); err != nil {
		return nil, err
	}
	return s.transition(ctx, orderID, delivery.ActionAssign, riderID, "admin")
}

// Take lets a rider claim a pending order and leave with it.
func (s *Service) Take(ctx context.Context, orderID, riderID string) (*Order, error) {
	if err := s.requireActive(ctx, riderID); err != nil {
		return nil, err
	}
	return s.transition(ctx, orderID, delivery.ActionTake, riderID, "rider:"+riderID)
}

// Start records the assigned rider picking up the order.
func (s *Service) Start(ctx context.Context, orderID, riderID string) (*Order, error) {
	return s.transition(ctx, orderID, delivery.ActionStart, riderID, "rider:"+riderID)
}

// Complete records the hand-over to the customer.
func (s *Service) Complete(ctx context.Context, orderID, riderID string) (*Order, error) {
	return s.transition(ctx, orderID, delivery.ActionComplete, riderID, "rider:"+riderID)
}

func (s *Service) requireActive(ctx context.Context, riderID string) error {
	if s.ext.Riders == nil {
		return nil
	}
	ok, err := s.ext.Riders.IsActive(ctx, riderID)
	if err != nil {
		return fmt.Errorf("load rider: %w", err)
	}
	if !ok {
		return delivery.ErrRiderInactive
	}
	return nil
}

func (s *Service) transition(ctx context.Context, orderID string, a delivery.Action, riderID, actor string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, o, a, riderID, actor)
}

func (s *Service) apply(ctx context.Context, o *Order, a delivery.Action, riderID, actor string) (*Order, error) {
	if o.Delivery == nil {
		return nil, delivery.ErrNoDelivery
	}
	if o.Status != StatusConfirmed {
		return nil, fmt.Errorf("%w: order %s is %s", delivery.ErrConflict, o.ID, o.Status)
	}
	from := o.Delivery.Status
	rule, err := delivery.Check(a, from, o.Delivery.RiderID, riderID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	next := *o.Delivery
	next.Status = rule.To
	switch a {
	case delivery.ActionAssign:
		next.RiderID = riderID
		next.AssignedAt = &now
	case delivery.ActionTake:
		next.RiderID = riderID
		next.AssignedAt = &now
		next.PickedUpAt = &now
	case delivery.ActionStart:
		next.PickedUpAt = &now
	case delivery.ActionComplete:
		next.DeliveredAt = &now
	}

	updated, err := s.repo.UpdateDelivery(ctx, DeliveryChange{
		OrderID: o.ID,
		Version: o.Version,
		From:    from,
		Next:    next,
		Actor:   actor,
	})
	if errors.Is(err, ErrStale) {
		return nil, fmt.Errorf("%w: order %s changed concurrently", delivery.ErrConflict, o.ID)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("[order] delivery id=%s %s -> %s rider=%s by=%s", o.ID, from, rule.To, next.RiderID, actor)

	ev := events.Event{Type: events.TypeDeliveryUpdated, OrderID: o.ID, RiderID: next.RiderID, Status: rule.To}
	if a == delivery.ActionAssign {
		ev.Type = events.TypeDeliveryAssigned
		ev.Data = updated
	}
	s.publish(ctx, ev)
	return updated, nil
}

// RiderBoard returns the rider's own deliveries and the pending ones anyone
// may take.
func (s *Service) RiderBoard(ctx context.Context, riderID string) (mine, available []Order, err error) {
	mine, err = s.repo.ListForRider(ctx, riderID)
	if err != nil {
		return nil, nil, err
	}
	available, err = s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, nil, err
	}
	return mine, available, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]Order, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) publish(ctx context.Context, ev events.Event) {
	if s.ext.Events == nil {
		return
	}
	if err := s.ext.Events.Publish(ctx, ev); err != nil {
		log.Printf("[order] publish %s id=%s: %v", ev.Type, ev.OrderID, err)
	}
}
