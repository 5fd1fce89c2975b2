package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/sanda/internal/domain/model"
)

// LedgerRepository mutates a non-negative balance row keyed by owner.
type LedgerRepository interface {
	Balance(ctx context.Context, ownerID int64) (*model.Balance, error)
	Deposit(ctx context.Context, ownerID int64, amount decimal.Decimal) (*model.Balance, error)
	// Withdraw fails with ErrInsufficientFunds and leaves the balance untouched when it would go negative.
	Withdraw(ctx context.Context, ownerID int64, amount decimal.Decimal) (*model.Balance, error)
}

// VolunteerBalanceRepository is the ledger stored on volunteer rows.
type VolunteerBalanceRepository interface {
	LedgerRepository
}

// WalletRepository is the ledger of user wallets.
type WalletRepository interface {
	LedgerRepository
	Open(ctx context.Context, userID int64) (*model.Balance, error)
}
