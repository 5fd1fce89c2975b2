package handlers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/sanda/internal/domain/model"
	"github.com/polkiloo/sanda/internal/usecase"
)

var stubTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type orderFacadeStub struct {
	createFn      func(context.Context, usecase.NewOrder) (*model.Order, error)
	listFn        func(context.Context, string) ([]model.Order, error)
	getFn         func(context.Context, int64) (*model.Order, error)
	advanceFn     func(context.Context, int64, string) (*model.Order, error)
	cancelFn      func(context.Context, int64) error
	deleteDoneFn  func(context.Context, int64) error
	userOrdersFn  func(context.Context, int64, string, bool) ([]model.Order, error)
	userCountFn   func(context.Context, int64) (int, error)
	cleanupDoneFn func(context.Context, int64) (*model.CleanupReport, error)
}

func (s orderFacadeStub) CreateOrder(ctx context.Context, in usecase.NewOrder) (*model.Order, error) {
	if s.createFn != nil {
		return s.createFn(ctx, in)
	}
	return &model.Order{ID: 1, RequesterID: in.RequesterID, Item: in.Item, Status: model.OrderStatusPending, CreatedAt: stubTime}, nil
}

func (s orderFacadeStub) ListOrders(ctx context.Context, status string) ([]model.Order, error) {
	if s.listFn != nil {
		return s.listFn(ctx, status)
	}
	return []model.Order{{ID: 1, Status: model.OrderStatusPending}}, nil
}

func (s orderFacadeStub) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

func (s orderFacadeStub) AdvanceStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	if s.advanceFn != nil {
		return s.advanceFn(ctx, id, status)
	}
	return &model.Order{ID: id, Status: model.OrderStatus(status)}, nil
}

func (s orderFacadeStub) CancelOrderByRequester(ctx context.Context, id int64) error {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, id)
	}
	return nil
}

func (s orderFacadeStub) MarkDoneAndDelete(ctx context.Context, id int64) error {
	if s.deleteDoneFn != nil {
		return s.deleteDoneFn(ctx, id)
	}
	return nil
}

func (s orderFacadeStub) UserOrders(ctx context.Context, userID int64, status string, exclude bool) ([]model.Order, error) {
	if s.userOrdersFn != nil {
		return s.userOrdersFn(ctx, userID, status, exclude)
	}
	return nil, nil
}

func (s orderFacadeStub) UserOrderCount(ctx context.Context, userID int64) (int, error) {
	if s.userCountFn != nil {
		return s.userCountFn(ctx, userID)
	}
	return 0, nil
}

func (s orderFacadeStub) CleanupDoneOrders(ctx context.Context, userID int64) (*model.CleanupReport, error) {
	if s.cleanupDoneFn != nil {
		return s.cleanupDoneFn(ctx, userID)
	}
	return &model.CleanupReport{RequesterID: userID}, nil
}

type volunteerFacadeStub struct {
	registerFn  func(context.Context, usecase.VolunteerRegistration) (*model.Volunteer, error)
	listFn      func(context.Context) ([]model.Volunteer, error)
	getFn       func(context.Context, int64) (*model.Volunteer, error)
	updateFn    func(context.Context, int64, usecase.VolunteerChanges) (*model.Volunteer, error)
	deleteFn    func(context.Context, int64) error
	availableFn func(context.Context, int64, string) ([]model.Order, error)
	acceptFn    func(context.Context, int64, int64) (*model.Order, error)
	releaseFn   func(context.Context, int64, int64) (*model.Order, error)
	acceptedFn  func(context.Context, int64, string) ([]model.Order, error)
}

func (s volunteerFacadeStub) RegisterVolunteer(ctx context.Context, in usecase.VolunteerRegistration) (*model.Volunteer, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, in)
	}
	return &model.Volunteer{ID: 1, FirstName: in.FirstName, Email: in.Email, PasswordHash: "secret"}, nil
}

func (s volunteerFacadeStub) Volunteers(ctx context.Context) ([]model.Volunteer, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return []model.Volunteer{{ID: 1}}, nil
}

func (s volunteerFacadeStub) Volunteer(ctx context.Context, id int64) (*model.Volunteer, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return &model.Volunteer{ID: id}, nil
}

func (s volunteerFacadeStub) UpdateVolunteer(ctx context.Context, id int64, changes usecase.VolunteerChanges) (*model.Volunteer, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, changes)
	}
	return &model.Volunteer{ID: id}, nil
}

func (s volunteerFacadeStub) DeleteVolunteer(ctx context.Context, id int64) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s volunteerFacadeStub) AvailableOrders(ctx context.Context, volunteerID int64, category string) ([]model.Order, error) {
	if s.availableFn != nil {
		return s.availableFn(ctx, volunteerID, category)
	}
	return nil, nil
}

func (s volunteerFacadeStub) AcceptOrder(ctx context.Context, volunteerID, orderID int64) (*model.Order, error) {
	if s.acceptFn != nil {
		return s.acceptFn(ctx, volunteerID, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusAccepted, VolunteerID: &volunteerID}, nil
}

func (s volunteerFacadeStub) CancelOrderByVolunteer(ctx context.Context, volunteerID, orderID int64) (*model.Order, error) {
	if s.releaseFn != nil {
		return s.releaseFn(ctx, volunteerID, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusPending}, nil
}

func (s volunteerFacadeStub) AcceptedOrders(ctx context.Context, volunteerID int64, category string) ([]model.Order, error) {
	if s.acceptedFn != nil {
		return s.acceptedFn(ctx, volunteerID, category)
	}
	return nil, nil
}

type ledgerStub struct {
	balanceFn     func(context.Context, int64) (*model.Balance, error)
	depositFn     func(context.Context, int64, decimal.Decimal) (*model.Balance, error)
	withdrawFn    func(context.Context, int64, decimal.Decimal) (*model.Balance, error)
	canWithdrawFn func(context.Context, int64, decimal.Decimal) (bool, error)
	openFn        func(context.Context, int64) (*model.Balance, error)
}

func (s ledgerStub) Balance(ctx context.Context, ownerID int64) (*model.Balance, error) {
	if s.balanceFn != nil {
		return s.balanceFn(ctx, ownerID)
	}
	return &model.Balance{OwnerID: ownerID, Amount: decimal.NewFromInt(10), UpdatedAt: stubTime}, nil
}

func (s ledgerStub) Deposit(ctx context.Context, ownerID int64, amount decimal.Decimal) (*model.Balance, error) {
	if s.depositFn != nil {
		return s.depositFn(ctx, ownerID, amount)
	}
	return &model.Balance{OwnerID: ownerID, Amount: amount, UpdatedAt: stubTime}, nil
}

func (s ledgerStub) Withdraw(ctx context.Context, ownerID int64, amount decimal.Decimal) (*model.Balance, error) {
	if s.withdrawFn != nil {
		return s.withdrawFn(ctx, ownerID, amount)
	}
	return &model.Balance{OwnerID: ownerID, UpdatedAt: stubTime}, nil
}

func (s ledgerStub) CanWithdraw(ctx context.Context, ownerID int64, amount decimal.Decimal) (bool, error) {
	if s.canWithdrawFn != nil {
		return s.canWithdrawFn(ctx, ownerID, amount)
	}
	return true, nil
}

func (s ledgerStub) Open(ctx context.Context, userID int64) (*model.Balance, error) {
	if s.openFn != nil {
		return s.openFn(ctx, userID)
	}
	return &model.Balance{OwnerID: userID, UpdatedAt: stubTime}, nil
}

type healthStub struct {
	err error
}

func (s healthStub) HealthCheck(context.Context) error {
	return s.err
}
