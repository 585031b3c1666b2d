package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrAlreadyConfirmed = errors.New("order already confirmed")
	ErrPaymentRefUsed   = errors.New("payment already recorded on another order")
	// ErrStale means the order changed between read and write.
	ErrStale = errors.New("order was modified concurrently")
)

// DeliveryChange is a compare-and-swap of the delivery sub-record: it only
// applies while the stored version still equals Version.
type DeliveryChange struct {
	OrderID string
	Version int
	From    string
	Next    Delivery
	Actor   string
}

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, q ListQuery) ([]Order, error)
	ListForRider(ctx context.Context, riderID string) ([]Order, error)
	ListAvailable(ctx context.Context) ([]Order, error)
	SetPaymentRef(ctx context.Context, id, ref string) error
	ConfirmPayment(ctx context.Context, id, paymentStatus, ref string) (*Order, error)
	UpdateDelivery(ctx context.Context, ch DeliveryChange) (*Order, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderColumns = `
	id, customer_name, customer_phone, customer_email, items,
	subtotal::text, discount_code, discount_percent::text, discount_amount::text,
	delivery_cost::text, total::text,
	payment_method, payment_status, payment_ref, status, fulfillment,
	COALESCE(pickup_date::text, ''), notes,
	delivery_address, delivery_distance_km, delivery_zone, delivery_fee::text,
	rider_share::text, platform_share::text, delivery_time_slot, delivery_status,
	rider_id, assigned_at, picked_up_at, delivered_at,
	version, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	var (
		addr, zone, fee, rs, ps, slot, dstatus, rider *string
		km                                            *float64
		assignedAt, pickedUpAt, deliveredAt           *time.Time
	)
	if d := o.Delivery; d != nil {
		addr, zone, slot, dstatus = &d.Address, &d.Zone, &d.TimeSlot, &d.Status
		km = &d.DistanceKm
		fee, rs, ps = money(d.Cost), money(d.RiderShare), money(d.PlatformShare)
		if d.RiderID != "" {
			rider = &d.RiderID
		}
		assignedAt, pickedUpAt, deliveredAt = d.AssignedAt, d.PickedUpAt, d.DeliveredAt
	}

	// the delivery sub-record is written in the same statement as the order
	return r.db.QueryRow(ctx, `
		INSERT INTO orders (
			id, customer_name, customer_phone, customer_email, items,
			subtotal, discount_code, discount_percent, discount_amount, delivery_cost, total,
			payment_method, payment_status, payment_ref, status, fulfillment, pickup_date, notes,
			delivery_address, delivery_distance_km, delivery_zone, delivery_fee,
			rider_share, platform_share, delivery_time_slot, delivery_status,
			rider_id, assigned_at, picked_up_at, delivered_at,
			version, created_at, updated_at
		) VALUES (
			$1,$2,$3,$4,$5,
			$6,$7,$8,$9,$10,$11,
			$12,$13,$14,$15,$16,NULLIF($17,'')::date,$18,
			$19,$20,$21,$22,
			$23,$24,$25,$26,
			$27,$28,$29,$30,
			1,NOW(),NOW()
		)
		RETURNING version, created_at, updated_at
	`,
		o.ID, o.Customer.Name, o.Customer.Phone, o.Customer.Email, items,
		o.Subtotal.StringFixed(2), o.DiscountCode, o.DiscountPercent.StringFixed(2), o.DiscountAmount.StringFixed(2),
		o.DeliveryCost.StringFixed(2), o.Total.StringFixed(2),
		o.PaymentMethod, o.PaymentStatus, o.PaymentRef, o.Status, o.Fulfillment, o.PickupDate, o.Notes,
		addr, km, zone, fee,
		rs, ps, slot, dstatus,
		rider, assignedAt, pickedUpAt, deliveredAt,
	).Scan(&o.Version, &o.CreatedAt, &o.UpdatedAt)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *PGRepo) List(ctx context.Context, q ListQuery) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q = q.Normalize()
	return r.query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR delivery_status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, q.Status, q.DeliveryStatus, q.Limit, q.Offset)
}

func (r *PGRepo) ListForRider(ctx context.Context, riderID string) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE rider_id = $1
		  AND (delivery_status <> 'delivered' OR delivered_at > NOW() - INTERVAL '24 hours')
		ORDER BY (delivery_status = 'delivered'), assigned_at DESC
	`, riderID)
}

func (r *PGRepo) ListAvailable(ctx context.Context) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE status = 'confirmed' AND delivery_status = 'pending'
		ORDER BY created_at
	`)
}

func (r *PGRepo) SetPaymentRef(ctx context.Context, id, ref string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET payment_ref = $2, updated_at = NOW() WHERE id = $1
	`, id, ref)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrPaymentRefUsed, ref)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ConfirmPayment(ctx context.Context, id, paymentStatus, ref string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `
		UPDATE orders
		SET status = 'confirmed',
		    payment_status = $2,
		    payment_ref = COALESCE(NULLIF($3,''), payment_ref),
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'awaiting_payment'
		RETURNING `+orderColumns, id, paymentStatus, ref))
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s", ErrPaymentRefUsed, ref)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrAlreadyConfirmed
		}
		return nil, ErrNotFound
	}
	return o, err
}

func (r *PGRepo) UpdateDelivery(ctx context.Context, ch DeliveryChange) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var rider *string
	if ch.Next.RiderID != "" {
		rider = &ch.Next.RiderID
	}
	o, err := scanOrder(tx.QueryRow(ctx, `
		UPDATE orders
		SET delivery_status = $3,
		    rider_id = $4,
		    assigned_at = $5,
		    picked_up_at = $6,
		    delivered_at = $7,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $1 AND version = $2 AND delivery_status IS NOT NULL
		RETURNING `+orderColumns,
		ch.OrderID, ch.Version, ch.Next.Status, rider,
		ch.Next.AssignedAt, ch.Next.PickedUpAt, ch.Next.DeliveredAt))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO order_status_history (order_id, from_status, to_status, rider_id, actor, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
	`, ch.OrderID, ch.From, ch.Next.Status, rider, ch.Actor); err != nil {
		return nil, err
	}
	return o, tx.Commit(ctx)
}

func (r *PGRepo) query(ctx context.Context, sql string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o                                             Order
		items                                         []byte
		subtotal, pct, disc, dcost, total             string
		addr, zone, fee, rs, ps, slot, dstatus, rider *string
		km                                            *float64
		assignedAt, pickedUpAt, deliveredAt           *time.Time
	)
	if err := row.Scan(
		&o.ID, &o.Customer.Name, &o.Customer.Phone, &o.Customer.Email, &items,
		&subtotal, &o.DiscountCode, &pct, &disc,
		&dcost, &total,
		&o.PaymentMethod, &o.PaymentStatus, &o.PaymentRef, &o.Status, &o.Fulfillment,
		&o.PickupDate, &o.Notes,
		&addr, &km, &zone, &fee,
		&rs, &ps, &slot, &dstatus,
		&rider, &assignedAt, &pickedUpAt, &deliveredAt,
		&o.Version, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items of %s: %w", o.ID, err)
	}
	o.Subtotal = parseMoney(subtotal)
	o.DiscountPercent = parseMoney(pct)
	o.DiscountAmount = parseMoney(disc)
	o.DeliveryCost = parseMoney(dcost)
	o.Total = parseMoney(total)

	if dstatus != nil {
		d := &Delivery{
			Address:     deref(addr),
			Zone:        deref(zone),
			Cost:        parseMoney(deref(fee)),
			RiderShare:  parseMoney(deref(rs)),
			TimeSlot:    deref(slot),
			Status:      *dstatus,
			RiderID:     deref(rider),
			AssignedAt:  assignedAt,
			PickedUpAt:  pickedUpAt,
			DeliveredAt: deliveredAt,
		}
		d.PlatformShare = parseMoney(deref(ps))
		if km != nil {
			d.DistanceKm = *km
		}
		o.Delivery = d
	}
	return &o, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func money(d decimal.Decimal) *string {
	s := d.StringFixed(2)
	return &s
}

func parseMoney(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
