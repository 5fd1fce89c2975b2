package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/sanda/internal/domain/model"
	"github.com/polkiloo/sanda/internal/usecase"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, in usecase.NewOrder) (*model.Order, error)
	ListOrders(ctx context.Context, status string) ([]model.Order, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	AdvanceStatus(ctx context.Context, id int64, status string) (*model.Order, error)
	CancelOrderByRequester(ctx context.Context, id int64) error
	MarkDoneAndDelete(ctx context.Context, id int64) error
	UserOrders(ctx context.Context, userID int64, status string, exclude bool) ([]model.Order, error)
	UserOrderCount(ctx context.Context, userID int64) (int, error)
	CleanupDoneOrders(ctx context.Context, userID int64) (*model.CleanupReport, error)
}

// VolunteerFacade covers volunteer profiles and order assignment.
type VolunteerFacade interface {
	RegisterVolunteer(ctx context.Context, in usecase.VolunteerRegistration) (*model.Volunteer, error)
	Volunteers(ctx context.Context) ([]model.Volunteer, error)
	Volunteer(ctx context.Context, id int64) (*model.Volunteer, error)
	UpdateVolunteer(ctx context.Context, id int64, changes usecase.VolunteerChanges) (*model.Volunteer, error)
	DeleteVolunteer(ctx context.Context, id int64) error
	AvailableOrders(ctx context.Context, volunteerID int64, category string) ([]model.Order, error)
	AcceptOrder(ctx context.Context, volunteerID, orderID int64) (*model.Order, error)
	CancelOrderByVolunteer(ctx context.Context, volunteerID, orderID int64) (*model.Order, error)
	AcceptedOrders(ctx context.Context, volunteerID int64, category string) ([]model.Order, error)
}

// Ledger is the balance contract shared by volunteer balances and wallets.
type Ledger interface {
	Balance(ctx context.Context, ownerID int64) (*model.Balance, error)
	Deposit(ctx context.Context, ownerID int64, amount decimal.Decimal) (*model.Balance, error)
	Withdraw(ctx context.Context, ownerID int64, amount decimal.Decimal) (*model.Balance, error)
	CanWithdraw(ctx context.Context, ownerID int64, amount decimal.Decimal) (bool, error)
}

// WalletLedger adds wallet opening to the ledger contract.
type WalletLedger interface {
	Ledger
	Open(ctx context.Context, userID int64) (*model.Balance, error)
}

// HealthChecker reports whether storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Facade aggregates the full set of operations used across handlers.
type Facade interface {
	OrderFacade
	VolunteerFacade
	HealthChecker
	VolunteerLedger() Ledger
	WalletLedger() WalletLedger
}
