package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/sanda/internal/domain/errors"
	"github.com/polkiloo/sanda/internal/domain/model"
	testhelpers "github.com/polkiloo/sanda/internal/test"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestVolunteerBalanceRoundTrip(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewVolunteerBalanceUseCase(store.VolunteerBalances(), nil)
	ctx := context.Background()
	id := store.AddVolunteer(model.Volunteer{Balance: dec("12.50")})

	b, err := uc.Deposit(ctx, id, dec("7.25"))
	require.NoError(t, err)
	assert.True(t, b.Amount.Equal(dec("19.75")), b.Amount.String())

	b, err = uc.Withdraw(ctx, id, dec("7.25"))
	require.NoError(t, err)
	assert.True(t, b.Amount.Equal(dec("12.50")), "deposit then withdraw restores the balance")

	_, err = uc.Withdraw(ctx, id, dec("12.51"))
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientFunds)
	b, err = uc.Balance(ctx, id)
	require.NoError(t, err)
	assert.True(t, b.Amount.Equal(dec("12.50")), "failed withdrawal leaves balance unchanged")
}

func TestBalanceUseCaseValidation(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewVolunteerBalanceUseCase(store.VolunteerBalances(), nil)
	ctx := context.Background()
	id := store.AddVolunteer(model.Volunteer{})

	for _, amount := range []string{"0", "-5"} {
		_, err := uc.Deposit(ctx, id, dec(amount))
		assert.ErrorIs(t, err, domainErrors.ErrInvalidAmount)
		_, err = uc.Withdraw(ctx, id, dec(amount))
		assert.ErrorIs(t, err, domainErrors.ErrInvalidAmount)
	}

	_, err := uc.Deposit(ctx, 404, dec("1"))
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = uc.Withdraw(ctx, 404, dec("1"))
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = uc.Balance(ctx, 404)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestBalanceUseCaseRejectsSubCentAmounts(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewVolunteerBalanceUseCase(store.VolunteerBalances(), nil)
	ctx := context.Background()
	id := store.AddVolunteer(model.Volunteer{Balance: dec("1.00")})

	_, err := uc.Withdraw(ctx, id, dec("0.004"))
	assert.ErrorIs(t, err, domainErrors.ErrInvalidAmount)
	_, err = uc.Deposit(ctx, id, dec("0.001"))
	assert.ErrorIs(t, err, domainErrors.ErrInvalidAmount)

	b, err := uc.Balance(ctx, id)
	require.NoError(t, err)
	assert.True(t, b.Amount.Equal(dec("1.00")), b.Amount.String())

	b, err = uc.Withdraw(ctx, id, dec("0.010"))
	require.NoError(t, err, "trailing zeros below a cent are still whole cents")
	assert.True(t, b.Amount.Equal(dec("0.99")), b.Amount.String())

	covered, err := uc.CanWithdraw(ctx, id, dec("0.004"))
	require.NoError(t, err)
	assert.True(t, covered)
}

func TestBalanceUseCaseCanWithdraw(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewVolunteerBalanceUseCase(store.VolunteerBalances(), nil)
	ctx := context.Background()
	id := store.AddVolunteer(model.Volunteer{Balance: dec("10")})

	cases := map[string]bool{"10": true, "10.01": false, "0": true, "-3": true}
	for amount, want := range cases {
		got, err := uc.CanWithdraw(ctx, id, dec(amount))
		require.NoError(t, err)
		assert.Equal(t, want, got, amount)
	}

	_, err := uc.CanWithdraw(ctx, 404, dec("1"))
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestBalanceUseCaseConcurrentWithdrawals(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewVolunteerBalanceUseCase(store.VolunteerBalances(), nil)
	ctx := context.Background()
	id := store.AddVolunteer(model.Volunteer{Balance: dec("5")})

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Withdraw(ctx, id, dec("1")); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	b, err := uc.Balance(ctx, id)
	require.NoError(t, err)
	assert.True(t, b.Amount.IsZero())
}

func TestWalletUseCase(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewWalletUseCase(store.Wallets(), nil)
	ctx := context.Background()
	user := store.AddUser("Ali", "Hassan")

	_, err := uc.Wallet(ctx, user)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	w, err := uc.Open(ctx, user)
	require.NoError(t, err)
	assert.True(t, w.Amount.IsZero())
	assert.Equal(t, user, w.OwnerID)

	_, err = uc.Open(ctx, user)
	assert.ErrorIs(t, err, domainErrors.ErrAlreadyExists)
	_, err = uc.Open(ctx, 404)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = uc.Deposit(ctx, user, dec("40"))
	require.NoError(t, err)
	_, err = uc.Withdraw(ctx, user, dec("41"))
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientFunds)
	w, err = uc.Wallet(ctx, user)
	require.NoError(t, err)
	assert.True(t, w.Amount.Equal(dec("40")))

	store.Fail(errors.New("down"))
	_, err = uc.Open(ctx, user)
	var internal *domainErrors.InternalError
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, "open wallet", internal.Op)
}
