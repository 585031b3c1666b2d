package payout

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Payment records that a rider was paid for a period.
type Payment struct {
	ID          string          `db:"id"           json:"id"`
	RiderID     string          `db:"rider_id"     json:"riderId"`
	PeriodStart time.Time       `db:"period_start" json:"periodStart"`
	PeriodEnd   time.Time       `db:"period_end"   json:"periodEnd"`
	Amount      decimal.Decimal `db:"amount"       json:"amount"`
	Deliveries  int             `db:"deliveries"   json:"deliveries"`
	PaidAt      time.Time       `db:"paid_at"      json:"paidAt"`
	Note        string          `db:"note"         json:"note,omitempty"`
}

type Repository interface {
	Delivered(ctx context.Context, p Period) ([]Delivered, error)
	Riders(ctx context.Context) ([]RiderRef, error)
	Payments(ctx context.Context, p Period) ([]Payment, error)
	Record(ctx context.Context, pay *Payment) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Delivered(ctx context.Context, p Period) ([]Delivered, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out []Delivered
	err := pgxscan.Select(ctx, r.db, &out, `
		SELECT id AS order_id,
		       rider_id,
		       COALESCE(delivery_distance_km, 0) AS distance_km,
		       COALESCE(rider_share, 0)::text AS rider_share,
		       delivered_at
		FROM orders
		WHERE delivery_status = 'delivered'
		  AND rider_id IS NOT NULL
		  AND delivered_at >= $1 AND delivered_at < $2
	`, p.Start, p.End)
	return out, err
}

func (r *PGRepo) Riders(ctx context.Context) ([]RiderRef, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out []RiderRef
	err := pgxscan.Select(ctx, r.db, &out, `SELECT id, name, email FROM riders`)
	return out, err
}

func (r *PGRepo) Payments(ctx context.Context, p Period) ([]Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out []Payment
	err := pgxscan.Select(ctx, r.db, &out, `
		SELECT id, rider_id, period_start, period_end, amount::text AS amount,
		       deliveries, paid_at, note
		FROM rider_payments
		WHERE period_start = $1 AND period_end = $2
		ORDER BY paid_at
	`, p.Start, p.End)
	return out, err
}

func (r *PGRepo) Record(ctx context.Context, pay *Payment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO rider_payments (id, rider_id, period_start, period_end, amount, deliveries, paid_at, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, pay.ID, pay.RiderID, pay.PeriodStart, pay.PeriodEnd, pay.Amount.StringFixed(2), pay.Deliveries, pay.PaidAt, pay.Note)
	return err
}
