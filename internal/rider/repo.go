package rider

import (
	"context"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("rider not found")
	ErrEmailTaken = errors.New("rider email already registered")
)

type Repository interface {
	Create(ctx context.Context, r *Rider) error
	GetByID(ctx context.Context, id string) (*Rider, error)
	GetByEmail(ctx context.Context, email string) (*Rider, error)
	Update(ctx context.Context, r *Rider, updatePassword bool) error
	ToggleActive(ctx context.Context, id string) (bool, error)
	ListWithLoad(ctx context.Context) ([]Listed, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const riderColumns = `id, name, email, phone, password_hash, active, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, rd *Rider) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO riders (id, name, email, phone, password_hash, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
		RETURNING created_at, updated_at
	`, rd.ID, rd.Name, rd.Email, rd.Phone, rd.PasswordHash, rd.Active).Scan(&rd.CreatedAt, &rd.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Rider, error) {
	return r.getOne(ctx, `SELECT `+riderColumns+` FROM riders WHERE id=$1`, id)
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (*Rider, error) {
	return r.getOne(ctx, `SELECT `+riderColumns+` FROM riders WHERE lower(email)=lower($1)`, email)
}

func (r *PGRepo) getOne(ctx context.Context, sql string, arg any) (*Rider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rd Rider
	if err := pgxscan.Get(ctx, r.db, &rd, sql, arg); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rd, nil
}

func (r *PGRepo) Update(ctx context.Context, rd *Rider, updatePassword bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		tag pgconn.CommandTag
		err error
	)
	if updatePassword {
		tag, err = r.db.Exec(ctx, `
			UPDATE riders
			SET name  = COALESCE(NULLIF($2,''), name),
			    email = COALESCE(NULLIF($3,''), email),
			    phone = COALESCE(NULLIF($4,''), phone),
			    password_hash = $5,
			    updated_at = NOW()
			WHERE id = $1
		`, rd.ID, rd.Name, rd.Email, rd.Phone, rd.PasswordHash)
	} else {
		tag, err = r.db.Exec(ctx, `
			UPDATE riders
			SET name  = COALESCE(NULLIF($2,''), name),
			    email = COALESCE(NULLIF($3,''), email),
			    phone = COALESCE(NULLIF($4,''), phone),
			    updated_at = NOW()
			WHERE id = $1
		`, rd.ID, rd.Name, rd.Email, rd.Phone)
	}
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ToggleActive(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var active bool
	err := r.db.QueryRow(ctx, `
		UPDATE riders SET active = NOT active, updated_at = NOW()
		WHERE id = $1
		RETURNING active
	`, id).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrNotFound
	}
	return active, err
}

func (r *PGRepo) ListWithLoad(ctx context.Context) ([]Listed, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out []Listed
	err := pgxscan.Select(ctx, r.db, &out, `
		SELECT r.id, r.name, r.email, r.phone, r.password_hash, r.active, r.created_at, r.updated_at,
		       COUNT(o.id)::int AS open_deliveries
		FROM riders r
		LEFT JOIN orders o
		       ON o.rider_id = r.id AND o.delivery_status IN ('assigned','in_delivery')
		GROUP BY r.id
		ORDER BY r.created_at
	`)
	return out, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
