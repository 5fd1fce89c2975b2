package auth

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest secret accepted for a volunteer account.
const MinPasswordLength = 8

var ErrWeakPassword = errors.New("password too short")

// PasswordHasher turns volunteer passwords into storable digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) bool
}

// BcryptHasher hashes with bcrypt after a length check.
type BcryptHasher struct {
	cost      int
	minLength int
}

// NewBcryptHasher creates BcryptHasher with provided cost; zero selects the bcrypt default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost, minLength: MinPasswordLength}
}

// Hash rejects short passwords with ErrWeakPassword and bcrypt-hashes the rest.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if utf8.RuneCountInString(password) < h.minLength {
		return "", ErrWeakPassword
	}
	encoded, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Matches reports whether password produced hash.
func (h *BcryptHasher) Matches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
