package auth

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminDisabled      = errors.New("admin login is not configured")
)

// Admin verifies the back-office credentials configured for the deployment.
type Admin struct {
	email string
	hash  string
	iss   *Issuer
}

func NewAdmin(email, passwordHash string, iss *Issuer) *Admin {
	return &Admin{email: strings.ToLower(strings.TrimSpace(email)), hash: passwordHash, iss: iss}
}

// Login returns an admin token for matching credentials.
func (a *Admin) Login(email, password string) (string, error) {
	if a.hash == "" {
		return "", ErrAdminDisabled
	}
	okEmail := strings.ToLower(strings.TrimSpace(email)) == a.email
	// compare the hash even when the email is wrong
	okPass := CheckPassword(a.hash, password)
	if !okEmail || !okPass {
		return "", ErrInvalidCredentials
	}
	return a.iss.Issue(a.email, RoleAdmin)
}
