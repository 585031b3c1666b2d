package order

import "github.com/shopspring/decimal"

// ItemRequest payload of a cart line.
// swagger:model ItemRequest
type ItemRequest struct {
	Name      string          `json:"name"      binding:"required,max=200" example:"Combo pranzo"`
	Quantity  int             `json:"quantity"  binding:"required,min=1,max=50" example:"2"`
	UnitPrice decimal.Decimal `json:"unitPrice" swaggertype:"string" example:"9.90"`
	Combo     *Combo          `json:"combo,omitempty"`
}

// CustomerRequest payload of the customer identity.
// swagger:model CustomerRequest
type CustomerRequest struct {
	Name  string `json:"name"  binding:"required,max=100" example:"Mario Bianchi"`
	Phone string `json:"phone" binding:"required,phone"   example:"+39 333 1234567"`
	Email string `json:"email" binding:"required,email"   example:"mario@example.com"`
}

// DeliveryRequest payload of the delivery details.
// swagger:model DeliveryRequest
type DeliveryRequest struct {
	Address    string  `json:"address"    binding:"required,max=300" example:"Via Roma 1, Milano"`
	DistanceKm float64 `json:"distanceKm" binding:"required,gt=0"    example:"4.2"`
	TimeSlot   string  `json:"timeSlot"   binding:"required,timeslot" example:"12:30-13:00"`
}

// PlaceOrderRequest is the cart submitted to cash-order and checkout.
// swagger:model PlaceOrderRequest
type PlaceOrderRequest struct {
	Customer        CustomerRequest  `json:"customer"`
	Items           []ItemRequest    `json:"items"           binding:"required,min=1,dive"`
	DeliveryEnabled bool             `json:"deliveryEnabled"`
	Delivery        *DeliveryRequest `json:"delivery,omitempty"`
	PickupDate      string           `json:"pickupDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	DiscountCode    string           `json:"discountCode,omitempty"`
	PaymentMethod   string           `json:"paymentMethod,omitempty" binding:"omitempty,oneof=card paypal cash"`
	Notes           string           `json:"notes,omitempty" binding:"max=500"`
}

// CheckoutResult is returned by checkout for online payments.
// swagger:model CheckoutResult
type CheckoutResult struct {
	OrderID   string          `json:"orderId"`
	Total     decimal.Decimal `json:"total" swaggertype:"string"`
	SessionID string          `json:"sessionId,omitempty"`
	URL       string          `json:"url,omitempty"`
}

// OrderIDRequest carries the target order of rider operations.
// swagger:model OrderIDRequest
type OrderIDRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	RiderID string `json:"riderId,omitempty"`
}

// AssignRequest payload of admin rider assignment.
// swagger:model AssignRequest
type AssignRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	RiderID string `json:"riderId" binding:"required"`
}

// PayPalConfirmRequest is posted after the client captured the PayPal order.
// swagger:model PayPalConfirmRequest
type PayPalConfirmRequest struct {
	OrderID       string `json:"orderId"       binding:"required"`
	PayPalOrderID string `json:"paypalOrderId" binding:"required"`
}
