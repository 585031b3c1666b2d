package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)
	tok, err := iss.Issue("rider-1", RoleRider)
	require.NoError(t, err)

	c, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "rider-1", c.Subject)
	assert.Equal(t, RoleRider, c.Role)

	_, err = NewIssuer("other", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	iss := NewIssuer("s3cret", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := iss.Issue("rider-1", RoleRider)
	require.NoError(t, err)

	_, err = NewIssuer("s3cret", time.Minute).Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestPasswordHashing(t *testing.T) {
	h, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPassword(h, "correct horse"))
	assert.False(t, CheckPassword(h, "wrong horse"))
	assert.False(t, CheckPassword("", "correct horse"))

	_, err = HashPassword("short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRequire(t *testing.T) {
	gin.SetMode(gin.TestMode)
	iss := NewIssuer("s3cret", time.Hour)
	r := gin.New()
	r.GET("/admin", Require(iss, RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, Subject(c))
	})

	call := func(header string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, call("").Code)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer garbage").Code)

	riderTok, _ := iss.Issue("r1", RoleRider)
	assert.Equal(t, http.StatusForbidden, call("Bearer "+riderTok).Code)

	adminTok, _ := iss.Issue("admin@pastosano.it", RoleAdmin)
	w := call("Bearer " + adminTok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@pastosano.it", w.Body.String())
}

func TestAdminLogin(t *testing.T) {
	h, err := HashPassword("admin-pass-123")
	require.NoError(t, err)
	iss := NewIssuer("s3cret", time.Hour)
	a := NewAdmin("Admin@PastoSano.it", h, iss)

	tok, err := a.Login("admin@pastosano.it", "admin-pass-123")
	require.NoError(t, err)
	c, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, c.Role)

	_, err = a.Login("admin@pastosano.it", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = a.Login("other@pastosano.it", "admin-pass-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = NewAdmin("admin@pastosano.it", "", iss).Login("admin@pastosano.it", "admin-pass-123")
	assert.ErrorIs(t, err, ErrAdminDisabled)
}
