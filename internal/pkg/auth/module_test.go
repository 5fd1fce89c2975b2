package auth

import (
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"golang.org/x/crypto/bcrypt"
)

func TestModuleProvidesBcryptHasher(t *testing.T) {
	var hasher PasswordHasher
	app := fxtest.New(t, fx.NopLogger, Module, fx.Populate(&hasher))
	app.RequireStart()
	defer app.RequireStop()

	bcryptHasher, ok := hasher.(*BcryptHasher)
	if !ok {
		t.Fatalf("expected *BcryptHasher, got %T", hasher)
	}
	if bcryptHasher.cost != bcrypt.DefaultCost || bcryptHasher.minLength != MinPasswordLength {
		t.Fatalf("unexpected hasher settings: cost=%d min=%d", bcryptHasher.cost, bcryptHasher.minLength)
	}
}
