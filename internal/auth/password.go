package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	HashFactor     = 10
	MinPasswordLen = 8
	MaxPasswordLen = 72
)

var ErrWeakPassword = fmt.Errorf("password must be %d-%d characters", MinPasswordLen, MaxPasswordLen)

func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLen || len(password) > MaxPasswordLen {
		return "", ErrWeakPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), HashFactor)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares in constant time; an empty hash never matches.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
