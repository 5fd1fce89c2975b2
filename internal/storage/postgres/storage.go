package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/polkiloo/sanda/internal/domain/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *zap.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *zap.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres storage ready", zap.String("host", cfg.ConnConfig.Host), zap.String("database", cfg.ConnConfig.Database))
	return storage, nil
}

var _ repository.Factory = (*Storage)(nil)

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Volunteers() repository.VolunteerRepository {
	return &volunteerRepository{storage: s}
}

func (s *Storage) VolunteerBalances() repository.VolunteerBalanceRepository {
	return &ledgerRepository{storage: s, table: volunteerLedger}
}

func (s *Storage) Wallets() repository.WalletRepository {
	return &walletRepository{ledgerRepository{storage: s, table: walletLedger}}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            first_name TEXT NOT NULL DEFAULT '',
            last_name TEXT NOT NULL DEFAULT '',
            email TEXT UNIQUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS volunteers (
            id BIGSERIAL PRIMARY KEY,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            phone_number TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            national_id TEXT NOT NULL DEFAULT '',
            age INTEGER NOT NULL,
            gender TEXT NOT NULL,
            address TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL DEFAULT '',
            nursing BOOLEAN NOT NULL DEFAULT FALSE,
            physical_therapy BOOLEAN NOT NULL DEFAULT FALSE,
            max_active_orders INTEGER NOT NULL DEFAULT 3,
            current_active_orders INTEGER NOT NULL DEFAULT 0 CHECK (current_active_orders >= 0),
            last_order_accepted_at TIMESTAMPTZ,
            balance NUMERIC(18, 2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CHECK (NOT (nursing AND physical_therapy))
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            image TEXT,
            description TEXT,
            price NUMERIC(18, 2),
            quantity INTEGER,
            category TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS service_items (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            image TEXT,
            description TEXT,
            price NUMERIC(18, 2) NOT NULL DEFAULT 0,
            category TEXT NOT NULL,
            image_updated_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            user_name TEXT NOT NULL DEFAULT '',
            name TEXT NOT NULL DEFAULT '',
            comment TEXT NOT NULL DEFAULT '',
            phone_number TEXT NOT NULL,
            location TEXT NOT NULL,
            category_name TEXT NOT NULL,
            product_id BIGINT REFERENCES products(id) ON DELETE SET NULL,
            service_id BIGINT REFERENCES service_items(id) ON DELETE SET NULL,
            item_image TEXT,
            gender_preference TEXT,
            status TEXT NOT NULL DEFAULT 'Pending',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            status_updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            in_progress_at TIMESTAMPTZ,
            completed_at TIMESTAMPTZ,
            volunteer_id BIGINT REFERENCES volunteers(id) ON DELETE SET NULL,
            CHECK (product_id IS NULL OR service_id IS NULL)
        )`,
		`CREATE TABLE IF NOT EXISTS wallets (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            balance NUMERIC(18, 2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_available ON orders(created_at) WHERE status = 'Pending' AND volunteer_id IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_orders_volunteer ON orders(volunteer_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Warn("rollback failed", zap.Error(rbErr))
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *zap.Logger {
	return s.logger
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
