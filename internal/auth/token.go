// Package auth issues and verifies the bearer tokens used by riders and
// administrators, and hashes their passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	RoleAdmin = "ADMIN"
	RoleRider = "RIDER"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is what a verified token carries.
type Claims struct {
	Subject string
	Role    string
	Expires time.Time
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs an HS256 token for subject with role.
func (i *Issuer) Issue(subject, role string) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  i.now().Unix(),
		"exp":  i.now().Add(i.ttl).Unix(),
	})
	s, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Parse verifies signature, algorithm and expiry.
func (i *Issuer) Parse(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	role, _ := mc["role"].(string)
	if sub == "" || role == "" {
		return Claims{}, ErrInvalidToken
	}
	c := Claims{Subject: sub, Role: role}
	if exp, ok := mc["exp"].(float64); ok {
		c.Expires = time.Unix(int64(exp), 0)
		if c.Expires.Before(i.now()) {
			return Claims{}, ErrTokenExpired
		}
	}
	return c, nil
}
