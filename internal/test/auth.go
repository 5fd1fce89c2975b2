package test

import (
	"strings"

	pkgAuth "github.com/polkiloo/sanda/internal/pkg/auth"
)

const stubHashPrefix = "stub$"

// HasherStub stands in for bcrypt so volunteer tests stay fast.
type HasherStub struct {
	// HashFn overrides Hash when set, e.g. to simulate a weak password.
	HashFn func(string) (string, error)
}

// Hash prefixes the password instead of hashing it.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return stubHashPrefix + password, nil
}

func (h HasherStub) Matches(hash, password string) bool {
	stored, ok := strings.CutPrefix(hash, stubHashPrefix)
	return ok && stored == password
}

var _ pkgAuth.PasswordHasher = HasherStub{}
