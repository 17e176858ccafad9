package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to staff accounts created by the migrate tool.
const MinPasswordLength = 8

var ErrWeakPassword = errors.New("password too short")

// HashPassword returns a bcrypt hash of plain at the given cost.  bcrypt
// rejects passwords longer than 72 bytes.
func HashPassword(plain string, cost int) (string, error) {
	if len(plain) < MinPasswordLength {
		return "", ErrWeakPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
