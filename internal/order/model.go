package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MethodCard   = "card"
	MethodPayPal = "paypal"
	MethodCash   = "cash"

	PaymentAwaiting       = "awaiting_payment"
	PaymentPaid           = "paid"
	PaymentCashOnDelivery = "cash_on_delivery"

	StatusAwaitingPayment = "awaiting_payment"
	StatusConfirmed       = "confirmed"

	FulfillmentPickup   = "pickup"
	FulfillmentDelivery = "delivery"
)

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Combo holds the sub-selections of a bundled menu item.
type Combo struct {
	Primo     string `json:"primo,omitempty"`
	Secondo   string `json:"secondo,omitempty"`
	Contorno  string `json:"contorno,omitempty"`
	Macedonia string `json:"macedonia,omitempty"`
}

type Item struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Combo     *Combo          `json:"combo,omitempty"`
}

// LineTotal is quantity times unit price.
func (it Item) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Delivery is the delivery sub-record. It is either absent (pickup) or has
// every pricing field set.
type Delivery struct {
	Address       string          `json:"address"`
	DistanceKm    float64         `json:"distanceKm"`
	Zone          string          `json:"zone"`
	Cost          decimal.Decimal `json:"cost"`
	RiderShare    decimal.Decimal `json:"riderShare"`
	PlatformShare decimal.Decimal `json:"platformShare"`
	TimeSlot      string          `json:"timeSlot"`
	Status        string          `json:"status"`
	RiderID       string          `json:"riderId,omitempty"`
	AssignedAt    *time.Time      `json:"assignedAt,omitempty"`
	PickedUpAt    *time.Time      `json:"pickedUpAt,omitempty"`
	DeliveredAt   *time.Time      `json:"deliveredAt,omitempty"`
}

type Order struct {
	ID              string          `json:"id"`
	Customer        Customer        `json:"customer"`
	Items           []Item          `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountCode    string          `json:"discountCode,omitempty"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	DeliveryCost    decimal.Decimal `json:"deliveryCost"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaymentRef      string          `json:"paymentRef,omitempty"`
	Status          string          `json:"status"`
	Fulfillment     string          `json:"fulfillment"`
	PickupDate      string          `json:"pickupDate,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Delivery        *Delivery       `json:"delivery,omitempty"`
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// DeliveryStatus returns the delivery status or "" for pickup orders.
func (o *Order) DeliveryStatus() string {
	if o.Delivery == nil {
		return ""
	}
	return o.Delivery.Status
}

// ListQuery filters the admin order list.
type ListQuery struct {
	Status         string
	DeliveryStatus string
	Limit          int
	Offset         int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize returns q with the page size and offset the list will apply.
func (q ListQuery) Normalize() ListQuery {
	if q.Limit <= 0 || q.Limit > MaxPageSize {
		q.Limit = DefaultPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}
