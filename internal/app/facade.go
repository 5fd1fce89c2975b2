package app

import (
	"context"

	"github.com/polkiloo/sanda/internal/domain/model"
	"github.com/polkiloo/sanda/internal/server/http/handlers"
	"github.com/polkiloo/sanda/internal/usecase"
)

// HealthChecker reports storage reachability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Facade is the single entry point used by the HTTP layer and the cleanup sweeper.
type Facade struct {
	orders            *usecase.OrderUseCase
	assignment        *usecase.AssignmentUseCase
	volunteers        *usecase.VolunteerUseCase
	volunteerBalances *usecase.VolunteerBalanceUseCase
	wallets           *usecase.WalletUseCase
	health            HealthChecker
}

func NewFacade(
	orders *usecase.OrderUseCase,
	assignment *usecase.AssignmentUseCase,
	volunteers *usecase.VolunteerUseCase,
	volunteerBalances *usecase.VolunteerBalanceUseCase,
	wallets *usecase.WalletUseCase,
	health HealthChecker,
) *Facade {
	return &Facade{
		orders:            orders,
		assignment:        assignment,
		volunteers:        volunteers,
		volunteerBalances: volunteerBalances,
		wallets:           wallets,
		health:            health,
	}
}

func (f *Facade) CreateOrder(ctx context.Context, in usecase.NewOrder) (*model.Order, error) {
	return f.orders.Create(ctx, in)
}

func (f *Facade) ListOrders(ctx context.Context, status string) ([]model.Order, error) {
	return f.orders.Orders(ctx, status)
}

func (f *Facade) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.Order(ctx, id)
}

func (f *Facade) AdvanceStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	return f.orders.AdvanceStatus(ctx, id, status)
}

func (f *Facade) CancelOrderByRequester(ctx context.Context, id int64) error {
	return f.orders.CancelByRequester(ctx, id)
}

func (f *Facade) MarkDoneAndDelete(ctx context.Context, id int64) error {
	return f.orders.MarkDoneAndDelete(ctx, id)
}

func (f *Facade) UserOrders(ctx context.Context, userID int64, status string, exclude bool) ([]model.Order, error) {
	return f.orders.UserOrders(ctx, userID, status, exclude)
}

func (f *Facade) UserOrderCount(ctx context.Context, userID int64) (int, error) {
	return f.orders.UserOrderCount(ctx, userID)
}

func (f *Facade) CleanupDoneOrders(ctx context.Context, userID int64) (*model.CleanupReport, error) {
	return f.orders.CleanupDone(ctx, userID)
}

func (f *Facade) RequestersForCleanup(ctx context.Context, limit int) ([]int64, error) {
	return f.orders.RequestersForCleanup(ctx, limit)
}

func (f *Facade) RegisterVolunteer(ctx context.Context, in usecase.VolunteerRegistration) (*model.Volunteer, error) {
	return f.volunteers.Register(ctx, in)
}

func (f *Facade) Volunteers(ctx context.Context) ([]model.Volunteer, error) {
	return f.volunteers.Volunteers(ctx)
}

func (f *Facade) Volunteer(ctx context.Context, id int64) (*model.Volunteer, error) {
	return f.volunteers.Volunteer(ctx, id)
}

func (f *Facade) UpdateVolunteer(ctx context.Context, id int64, changes usecase.VolunteerChanges) (*model.Volunteer, error) {
	return f.volunteers.Update(ctx, id, changes)
}

func (f *Facade) DeleteVolunteer(ctx context.Context, id int64) error {
	return f.volunteers.Delete(ctx, id)
}

func (f *Facade) AvailableOrders(ctx context.Context, volunteerID int64, category string) ([]model.Order, error) {
	return f.assignment.AvailableOrders(ctx, volunteerID, category)
}

func (f *Facade) AcceptOrder(ctx context.Context, volunteerID, orderID int64) (*model.Order, error) {
	return f.assignment.Accept(ctx, volunteerID, orderID)
}

func (f *Facade) CancelOrderByVolunteer(ctx context.Context, volunteerID, orderID int64) (*model.Order, error) {
	return f.assignment.CancelByVolunteer(ctx, volunteerID, orderID)
}

func (f *Facade) AcceptedOrders(ctx context.Context, volunteerID int64, category string) ([]model.Order, error) {
	return f.assignment.AcceptedOrders(ctx, volunteerID, category)
}

func (f *Facade) VolunteerLedger() handlers.Ledger {
	return f.volunteerBalances
}

func (f *Facade) WalletLedger() handlers.WalletLedger {
	return f.wallets
}

func (f *Facade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

var _ handlers.Facade = (*Facade)(nil)
