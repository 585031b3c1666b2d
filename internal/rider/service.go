package rider

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/MikeMC777/pasto-sano/internal/auth"
	"github.com/MikeMC777/pasto-sano/internal/delivery"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactive           = errors.New("rider account is disabled")
)

type Service struct {
	repo   Repository
	issuer *auth.Issuer
}

func NewService(repo Repository, issuer *auth.Issuer) *Service {
	return &Service{repo: repo, issuer: issuer}
}

func (s *Service) Create(ctx context.Context, in CreateRiderRequest) (*Rider, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	r := &Rider{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	log.Printf("[rider] created id=%s email=%s", r.ID, r.Email)
	return r, nil
}

// Update applies the non-empty fields and returns the stored rider.
func (s *Service) Update(ctx context.Context, in UpdateRiderRequest) (*Rider, error) {
	r := &Rider{
		ID:    in.RiderID,
		Name:  strings.TrimSpace(in.Name),
		Email: strings.ToLower(strings.TrimSpace(in.Email)),
		Phone: strings.TrimSpace(in.Phone),
	}
	updatePassword := in.Password != ""
	if updatePassword {
		h, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		r.PasswordHash = h
	}
	if err := s.repo.Update(ctx, r, updatePassword); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, in.RiderID)
}

// ToggleStatus flips the rider between active and inactive.
func (s *Service) ToggleStatus(ctx context.Context, id string) (bool, error) {
	active, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		return false, err
	}
	log.Printf("[rider] id=%s active=%t", id, active)
	return active, nil
}

func (s *Service) List(ctx context.Context) ([]Listed, error) {
	out, err := s.repo.ListWithLoad(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Listed{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Rider, error) {
	return s.repo.GetByID(ctx, id)
}

// Candidates lists every rider with its current load for auto-assignment.
func (s *Service) Candidates(ctx context.Context) ([]delivery.Candidate, error) {
	list, err := s.repo.ListWithLoad(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]delivery.Candidate, 0, len(list))
	for _, l := range list {
		out = append(out, delivery.Candidate{
			RiderID:        l.ID,
			Active:         l.Active,
			OpenDeliveries: l.OpenDeliveries,
			CreatedAt:      l.CreatedAt,
		})
	}
	return out, nil
}

// IsActive reports whether the rider exists and is enabled.
func (s *Service) IsActive(ctx context.Context, id string) (bool, error) {
	r, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return r.Active, nil
}

// Login verifies the credentials and returns a rider token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *Rider, error) {
	r, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("load rider: %w", err)
	}
	if !auth.CheckPassword(r.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if !r.Active {
		return "", nil, ErrInactive
	}
	tok, err := s.issuer.Issue(r.ID, auth.RoleRider)
	if err != nil {
		return "", nil, err
	}
	return tok, r, nil
}
