package payout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNothingToPay = errors.New("rider has no deliveries in this period")
	ErrAlreadyPaid  = errors.New("period already paid for this rider")
)

// Report is the payout view of one period.
type Report struct {
	Period     Period          `json:"period"`
	Riders     []Summary       `json:"riders"`
	Deliveries int             `json:"totalDeliveries"`
	Earnings   decimal.Decimal `json:"totalEarnings"`
}

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

// Period resolves a selector relative to the current time.
func (s *Service) Period(kind, start, end string) (Period, error) {
	return ParsePeriod(kind, start, end, s.now(), s.loc)
}

func (s *Service) Report(ctx context.Context, p Period) (*Report, error) {
	orders, err := s.repo.Delivered(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("load deliveries: %w", err)
	}
	riders, err := s.repo.Riders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load riders: %w", err)
	}
	paid, err := s.repo.Payments(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}

	sums := Aggregate(orders, riders, p)
	ApplyPayments(sums, paid)

	rep := &Report{Period: p, Riders: sums}
	for _, sm := range sums {
		rep.Deliveries += sm.Deliveries
		rep.Earnings = rep.Earnings.Add(sm.Earnings)
	}
	return rep, nil
}

// MarkPaid records the recomputed amount of riderID for p.
func (s *Service) MarkPaid(ctx context.Context, riderID string, p Period, note string) (*Payment, error) {
	rep, err := s.Report(ctx, p)
	if err != nil {
		return nil, err
	}
	for _, sm := range rep.Riders {
		if sm.RiderID != riderID {
			continue
		}
		if sm.Status == StatusPaid {
			return nil, ErrAlreadyPaid
		}
		pay := &Payment{
			ID:          uuid.NewString(),
			RiderID:     riderID,
			PeriodStart: p.Start,
			PeriodEnd:   p.End,
			Amount:      sm.Earnings,
			Deliveries:  sm.Deliveries,
			PaidAt:      s.now().UTC(),
			Note:        note,
		}
		if err := s.repo.Record(ctx, pay); err != nil {
			return nil, fmt.Errorf("record payment: %w", err)
		}
		log.Printf("[payout] rider=%s paid %s for %d deliveries %s..%s",
			riderID, pay.Amount.StringFixed(2), pay.Deliveries, p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly))
		return pay, nil
	}
	return nil, ErrNothingToPay
}
