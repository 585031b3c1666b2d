package delivery

import (
	"errors"
	"fmt"
)

const (
	StatusPending    = "pending"
	StatusAssigned   = "assigned"
	StatusInDelivery = "in_delivery"
	StatusDelivered  = "delivered"
)

var (
	ErrConflict      = errors.New("delivery status does not allow this operation")
	ErrNotYourOrder  = errors.New("order is assigned to another rider")
	ErrNoDelivery    = errors.New("order has no delivery")
	ErrRiderInactive = errors.New("rider is not active")
)

// Action names a delivery transition.
type Action string

const (
	// ActionAssign is done by an admin or by auto-assignment.
	ActionAssign Action = "assign"
	// ActionTake is a rider claiming an open order and leaving with it.
	ActionTake Action = "take"
	// ActionStart is the assigned rider picking up the order.
	ActionStart Action = "start"
	// ActionComplete is the assigned rider handing the order over.
	ActionComplete Action = "complete"
)

// Rule describes one transition. When OwnerOnly is set the acting rider must
// already be the assigned one.
type Rule struct {
	From      []string
	To        string
	OwnerOnly bool
}

var rules = map[Action]Rule{
	ActionAssign:   {From: []string{StatusPending, StatusAssigned}, To: StatusAssigned},
	ActionTake:     {From: []string{StatusPending}, To: StatusInDelivery},
	ActionStart:    {From: []string{StatusAssigned}, To: StatusInDelivery, OwnerOnly: true},
	ActionComplete: {From: []string{StatusInDelivery}, To: StatusDelivered, OwnerOnly: true},
}

// RuleFor returns the transition rule for an action.
func RuleFor(a Action) (Rule, error) {
	r, ok := rules[a]
	if !ok {
		return Rule{}, fmt.Errorf("unknown delivery action %q", a)
	}
	return r, nil
}

// Allows reports whether the rule accepts the current status.
func (r Rule) Allows(from string) bool {
	for _, s := range r.From {
		if s == from {
			return true
		}
	}
	return false
}

// Check validates a transition against the current record. assignedRider is
// the rider currently on the order (may be empty), actingRider the one
// performing the action.
func Check(a Action, current, assignedRider, actingRider string) (Rule, error) {
	r, err := RuleFor(a)
	if err != nil {
		return Rule{}, err
	}
	if r.OwnerOnly && assignedRider != actingRider {
		return r, ErrNotYourOrder
	}
	if !r.Allows(current) {
		return r, fmt.Errorf("%w: %s -> %s", ErrConflict, current, r.To)
	}
	return r, nil
}

// IsOpen reports whether a delivery still counts toward a rider's load.
func IsOpen(status string) bool {
	return status == StatusAssigned || status == StatusInDelivery
}

// Valid reports whether s is a known delivery status.
func Valid(s string) bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInDelivery, StatusDelivered:
		return true
	}
	return false
}
