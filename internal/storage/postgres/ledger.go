package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/sanda/internal/domain/errors"
	"github.com/polkiloo/sanda/internal/domain/model"
)

// ledgerTable names the row holding a balance column and the column identifying its owner.
type ledgerTable struct {
	name  string
	owner string
}

var (
	volunteerLedger = ledgerTable{name: "volunteers", owner: "id"}
	walletLedger    = ledgerTable{name: "wallets", owner: "user_id"}
)

func (t ledgerTable) selectBalance() string {
	return fmt.Sprintf(`SELECT %[2]s, balance, updated_at FROM %[1]s WHERE %[2]s=$1`, t.name, t.owner)
}

func (t ledgerTable) lockBalance() string {
	return fmt.Sprintf(`SELECT balance FROM %[1]s WHERE %[2]s=$1 FOR UPDATE`, t.name, t.owner)
}

func (t ledgerTable) addBalance() string {
	return fmt.Sprintf(`UPDATE %[1]s SET balance = balance + $2, updated_at = NOW() WHERE %[2]s=$1
        RETURNING %[2]s, balance, updated_at`, t.name, t.owner)
}

func (t ledgerTable) subtractBalance() string {
	return fmt.Sprintf(`UPDATE %[1]s SET balance = balance - $2, updated_at = NOW() WHERE %[2]s=$1
        RETURNING %[2]s, balance, updated_at`, t.name, t.owner)
}

type ledgerRepository struct {
	storage *Storage
	table   ledgerTable
}

func scanBalance(row pgx.Row) (*model.Balance, error) {
	var b model.Balance
	if err := row.Scan(&b.OwnerID, &b.Amount, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *ledgerRepository) Balance(ctx context.Context, ownerID int64) (*model.Balance, error) {
	return scanBalance(r.storage.pool.QueryRow(ctx, r.table.selectBalance(), ownerID))
}

func (r *ledgerRepository) Deposit(ctx context.Context, ownerID int64, amount decimal.Decimal) (*model.Balance, error) {
	return scanBalance(r.storage.pool.QueryRow(ctx, r.table.addBalance(), ownerID, amount))
}

func (r *ledgerRepository) Withdraw(ctx context.Context, ownerID int64, amount decimal.Decimal) (*model.Balance, error) {
	var balance *model.Balance
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var current decimal.Decimal
		if err := tx.QueryRow(ctx, r.table.lockBalance(), ownerID).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if current.LessThan(amount) {
			return domainErrors.ErrInsufficientFunds
		}

		var err error
		balance, err = scanBalance(tx.QueryRow(ctx, r.table.subtractBalance(), ownerID, amount))
		return err
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

type walletRepository struct {
	ledgerRepository
}

func (r *walletRepository) Open(ctx context.Context, userID int64) (*model.Balance, error) {
	balance, err := scanBalance(r.storage.pool.QueryRow(ctx,
		`INSERT INTO wallets (user_id) VALUES ($1) RETURNING user_id, balance, updated_at`, userID))
	if err != nil {
		switch pgCode(err) {
		case pgUniqueViolation:
			return nil, domainErrors.ErrAlreadyExists
		case pgForeignKeyViolation:
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return balance, nil
}
