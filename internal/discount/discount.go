// Package discount validates promotional codes and records their use.
package discount

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCode     = errors.New("unknown discount code")
	ErrAlreadyUsed     = errors.New("discount code already used")
	ErrInvalidIdentity = errors.New("email or phone is required for this code")
)

// Code is one entry of the promotion catalog.
type Code struct {
	Code      string
	Percent   decimal.Decimal
	SingleUse bool
}

var catalog = map[string]Code{
	"BENVENUTO": {Code: "BENVENUTO", Percent: decimal.NewFromInt(10)},
	"SCONTO5":   {Code: "SCONTO5", Percent: decimal.NewFromInt(5), SingleUse: true},
}

// Normalize trims and upper-cases a code as typed by a customer.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup finds a catalog code.
func Lookup(code string) (Code, bool) {
	c, ok := catalog[Normalize(code)]
	return c, ok
}

// Amount is the discount on subtotal, rounded to cents.
func (c Code) Amount(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(c.Percent).Div(decimal.NewFromInt(100)).Round(2)
}

type Usage struct {
	Code    string
	Email   string
	Phone   string
	OrderID string
	UsedAt  time.Time
}

type Repository interface {
	// Used reports whether code was already used by email or by phone.
	Used(ctx context.Context, code, email, phone string) (bool, error)
	Record(ctx context.Context, u Usage) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Check returns the code if the customer may use it.
func (s *Service) Check(ctx context.Context, code, email, phone string) (Code, error) {
	c, ok := Lookup(code)
	if !ok {
		return Code{}, ErrUnknownCode
	}
	if !c.SingleUse {
		return c, nil
	}
	email, phone = normEmail(email), normPhone(phone)
	if email == "" && phone == "" {
		return Code{}, ErrInvalidIdentity
	}
	used, err := s.repo.Used(ctx, c.Code, email, phone)
	if err != nil {
		return Code{}, fmt.Errorf("check discount usage: %w", err)
	}
	if used {
		return Code{}, ErrAlreadyUsed
	}
	return c, nil
}

// Use validates the code and records the usage.
func (s *Service) Use(ctx context.Context, code, email, phone, orderID string) (Code, error) {
	c, err := s.Check(ctx, code, email, phone)
	if err != nil {
		return Code{}, err
	}
	if err := s.repo.Record(ctx, Usage{
		Code:    c.Code,
		Email:   normEmail(email),
		Phone:   normPhone(phone),
		OrderID: orderID,
		UsedAt:  time.Now().UTC(),
	}); err != nil {
		return Code{}, fmt.Errorf("record discount usage: %w", err)
	}
	return c, nil
}

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func normPhone(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '.' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
