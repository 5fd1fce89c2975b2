package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/sanda/internal/domain/errors"
	"github.com/polkiloo/sanda/internal/domain/model"
	"github.com/polkiloo/sanda/internal/domain/repository"
)

// BalanceUseCase applies the ledger contract to one kind of balance row.
type BalanceUseCase struct {
	ledger repository.LedgerRepository
	logger *zap.Logger
}

func newBalanceUseCase(ledger repository.LedgerRepository, logger *zap.Logger) BalanceUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return BalanceUseCase{ledger: ledger, logger: logger}
}

// Balance returns the current balance of the owner.
func (u *BalanceUseCase) Balance(ctx context.Context, ownerID int64) (*model.Balance, error) {
	b, err := u.ledger.Balance(ctx, ownerID)
	return b, domainErrors.Wrap("get balance", err)
}

// amountPlaces matches the NUMERIC(18, 2) balance columns; finer amounts would be rounded away.
const amountPlaces = 2

func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Truncate(amountPlaces))
}

// Deposit adds a positive amount of whole cents.
func (u *BalanceUseCase) Deposit(ctx context.Context, ownerID int64, amount decimal.Decimal) (*model.Balance, error) {
	if !validAmount(amount) {
		return nil, domainErrors.ErrInvalidAmount
	}
	b, err := u.ledger.Deposit(ctx, ownerID, amount)
	if err != nil {
		return nil, domainErrors.Wrap("deposit", err)
	}
	u.logger.Info("deposit applied", zap.Int64("owner_id", ownerID), zap.Stringer("amount", amount))
	return b, nil
}

// Withdraw subtracts a positive amount of whole cents. The balance is left untouched when it cannot cover it.
func (u *BalanceUseCase) Withdraw(ctx context.Context, ownerID int64, amount decimal.Decimal) (*model.Balance, error) {
	if !validAmount(amount) {
		return nil, domainErrors.ErrInvalidAmount
	}
	b, err := u.ledger.Withdraw(ctx, ownerID, amount)
	if err != nil {
		return nil, domainErrors.Wrap("withdraw", err)
	}
	u.logger.Info("withdrawal applied", zap.Int64("owner_id", ownerID), zap.Stringer("amount", amount))
	return b, nil
}

// CanWithdraw reports whether the balance covers amount. Non-positive amounts are always covered.
func (u *BalanceUseCase) CanWithdraw(ctx context.Context, ownerID int64, amount decimal.Decimal) (bool, error) {
	b, err := u.ledger.Balance(ctx, ownerID)
	if err != nil {
		return false, domainErrors.Wrap("get balance", err)
	}
	return b.Covers(amount), nil
}

// VolunteerBalanceUseCase manages volunteer earnings.
type VolunteerBalanceUseCase struct {
	BalanceUseCase
}

// NewVolunteerBalanceUseCase constructs VolunteerBalanceUseCase.
func NewVolunteerBalanceUseCase(balances repository.VolunteerBalanceRepository, logger *zap.Logger) *VolunteerBalanceUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VolunteerBalanceUseCase{BalanceUseCase: newBalanceUseCase(balances, logger.Named("volunteer_balance"))}
}

// WalletUseCase manages requester wallets.
type WalletUseCase struct {
	BalanceUseCase
	wallets repository.WalletRepository
}

// NewWalletUseCase constructs WalletUseCase.
func NewWalletUseCase(wallets repository.WalletRepository, logger *zap.Logger) *WalletUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WalletUseCase{
		BalanceUseCase: newBalanceUseCase(wallets, logger.Named("wallet")),
		wallets:        wallets,
	}
}

// Open creates an empty wallet for the user.
func (u *WalletUseCase) Open(ctx context.Context, userID int64) (*model.Balance, error) {
	w, err := u.wallets.Open(ctx, userID)
	if err != nil {
		return nil, domainErrors.Wrap("open wallet", err)
	}
	u.logger.Info("wallet opened", zap.Int64("user_id", userID))
	return w, nil
}

// Wallet returns the user's wallet.
func (u *WalletUseCase) Wallet(ctx context.Context, userID int64) (*model.Balance, error) {
	return u.Balance(ctx, userID)
}
