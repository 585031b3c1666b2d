package rider

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/pasto-sano/internal/auth"
)

func init() { log.SetOutput(io.Discard) }

type memRepo struct {
	byID map[string]Listed
}

func (m *memRepo) Create(_ context.Context, r *Rider) error {
	for _, x := range m.byID {
		if x.Email == r.Email {
			return ErrEmailTaken
		}
	}
	r.CreatedAt = time.Now()
	m.byID[r.ID] = Listed{Rider: *r}
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Rider, error) {
	l, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	r := l.Rider
	return &r, nil
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*Rider, error) {
	for _, l := range m.byID {
		if l.Email == email {
			r := l.Rider
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) Update(_ context.Context, r *Rider, updatePassword bool) error {
	l, ok := m.byID[r.ID]
	if !ok {
		return ErrNotFound
	}
	if r.Name != "" {
		l.Name = r.Name
	}
	if updatePassword {
		l.PasswordHash = r.PasswordHash
	}
	m.byID[r.ID] = l
	return nil
}

func (m *memRepo) ToggleActive(_ context.Context, id string) (bool, error) {
	l, ok := m.byID[id]
	if !ok {
		return false, ErrNotFound
	}
	l.Active = !l.Active
	m.byID[id] = l
	return l.Active, nil
}

func (m *memRepo) ListWithLoad(context.Context) ([]Listed, error) {
	out := make([]Listed, 0, len(m.byID))
	for _, l := range m.byID {
		out = append(out, l)
	}
	return out, nil
}

func newTestService() (*Service, *memRepo, *auth.Issuer) {
	repo := &memRepo{byID: map[string]Listed{}}
	iss := auth.NewIssuer("secret", time.Hour)
	return NewService(repo, iss), repo, iss
}

func TestCreateAndLogin(t *testing.T) {
	svc, _, iss := newTestService()
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateRiderRequest{Name: " Giulia ", Email: "Giulia@PastoSano.it", Phone: "333 1234567", Password: "s3cure-pass"})
	require.NoError(t, err)
	assert.Equal(t, "Giulia", r.Name)
	assert.Equal(t, "giulia@pastosano.it", r.Email)
	assert.True(t, r.Active)
	assert.NotEqual(t, "s3cure-pass", r.PasswordHash)

	_, err = svc.Create(ctx, CreateRiderRequest{Name: "Other", Email: "giulia@pastosano.it", Phone: "333", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	tok, got, err := svc.Login(ctx, "giulia@pastosano.it", "s3cure-pass")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	claims, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, r.ID, claims.Subject)
	assert.Equal(t, auth.RoleRider, claims.Role)

	_, _, err = svc.Login(ctx, "giulia@pastosano.it", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody@pastosano.it", "s3cure-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestToggleBlocksLoginAndAssignment(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	r, err := svc.Create(ctx, CreateRiderRequest{Name: "Luca", Email: "luca@pastosano.it", Phone: "333", Password: "password-1"})
	require.NoError(t, err)

	active, err := svc.ToggleStatus(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, active)

	_, _, err = svc.Login(ctx, "luca@pastosano.it", "password-1")
	assert.ErrorIs(t, err, ErrInactive)

	ok, err := svc.IsActive(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsActive(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	cands, err := svc.Candidates(ctx)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.False(t, cands[0].Active)
}

func TestUpdateKeepsPasswordUnlessGiven(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	r, err := svc.Create(ctx, CreateRiderRequest{Name: "Sara", Email: "sara@pastosano.it", Phone: "333", Password: "first-pass"})
	require.NoError(t, err)
	oldHash := repo.byID[r.ID].PasswordHash

	got, err := svc.Update(ctx, UpdateRiderRequest{RiderID: r.ID, Name: "Sara B."})
	require.NoError(t, err)
	assert.Equal(t, "Sara B.", got.Name)
	assert.Equal(t, oldHash, repo.byID[r.ID].PasswordHash)

	_, err = svc.Update(ctx, UpdateRiderRequest{RiderID: r.ID, Password: "second-pass"})
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, "sara@pastosano.it", "second-pass")
	assert.NoError(t, err)

	_, err = svc.Update(ctx, UpdateRiderRequest{RiderID: "ghost", Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}
