package auth

import "go.uber.org/fx"

// Module provides password hashing for volunteer accounts.
var Module = fx.Provide(newPasswordHasher)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}
