package discount

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Used(ctx context.Context, code, email, phone string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var used bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM discount_usage
			WHERE code = $1
			  AND ((email <> '' AND email = $2) OR (phone <> '' AND phone = $3))
		)
	`, code, email, phone).Scan(&used)
	return used, err
}

func (r *PGRepo) Record(ctx context.Context, u Usage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO discount_usage (code, email, phone, order_id, used_at)
		VALUES ($1,$2,$3,NULLIF($4,''),$5)
	`, u.Code, u.Email, u.Phone, u.OrderID, u.UsedAt)
	return err
}
