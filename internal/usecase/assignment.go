package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/sanda/internal/domain/errors"
	"github.com/polkiloo/sanda/internal/domain/model"
	"github.com/polkiloo/sanda/internal/domain/repository"
)

// AssignmentUseCase moves orders between the pending pool and volunteers.
type AssignmentUseCase struct {
	orders     repository.OrderRepository
	volunteers repository.VolunteerRepository
	logger     *zap.Logger
}

// NewAssignmentUseCase constructs AssignmentUseCase.
func NewAssignmentUseCase(orders repository.OrderRepository, volunteers repository.VolunteerRepository, logger *zap.Logger) *AssignmentUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentUseCase{orders: orders, volunteers: volunteers, logger: logger.Named("assignment")}
}

// AvailableOrders lists pending unassigned orders the volunteer is eligible for,
// optionally narrowed to one category.
func (u *AssignmentUseCase) AvailableOrders(ctx context.Context, volunteerID int64, category string) ([]model.Order, error) {
	volunteer, err := u.volunteers.GetByID(ctx, volunteerID)
	if err != nil {
		return nil, domainErrors.Wrap("get volunteer", err)
	}
	orders, err := u.orders.ListAvailable(ctx)
	if err != nil {
		return nil, domainErrors.Wrap("list available orders", err)
	}
	return filterOrders(orders, func(o model.Order) bool {
		return Eligible(o, *volunteer) && inCategory(o, category)
	}), nil
}

// Accept claims an order for the volunteer. Only one of several concurrent
// claims on the same order succeeds; the rest fail with ErrNotAvailable.
func (u *AssignmentUseCase) Accept(ctx context.Context, volunteerID, orderID int64) (*model.Order, error) {
	volunteer, err := u.volunteers.GetByID(ctx, volunteerID)
	if err != nil {
		return nil, domainErrors.Wrap("get volunteer", err)
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotAvailable
		}
		return nil, domainErrors.Wrap("get order", err)
	}
	if !order.Claimable() || !Eligible(*order, *volunteer) {
		return nil, domainErrors.ErrNotAvailable
	}

	accepted, err := u.orders.Assign(ctx, orderID, volunteerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrCapacityReached) {
			u.logger.Info("accept rejected at capacity",
				zap.Int64("volunteer_id", volunteerID),
				zap.Int("max_active_orders", volunteer.MaxActiveOrders))
		}
		return nil, domainErrors.Wrap("assign order", err)
	}
	u.logger.Info("order accepted", zap.Int64("order_id", orderID), zap.Int64("volunteer_id", volunteerID))
	return accepted, nil
}

// CancelByVolunteer hands an active order back to the pending pool.
func (u *AssignmentUseCase) CancelByVolunteer(ctx context.Context, volunteerID, orderID int64) (*model.Order, error) {
	released, err := u.orders.Release(ctx, orderID, volunteerID)
	if err != nil {
		return nil, domainErrors.Wrap("release order", err)
	}
	u.logger.Info("order released", zap.Int64("order_id", orderID), zap.Int64("volunteer_id", volunteerID))
	return released, nil
}

// AcceptedOrders lists the volunteer's orders that are not Done yet.
func (u *AssignmentUseCase) AcceptedOrders(ctx context.Context, volunteerID int64, category string) ([]model.Order, error) {
	if _, err := u.volunteers.GetByID(ctx, volunteerID); err != nil {
		return nil, domainErrors.Wrap("get volunteer", err)
	}
	orders, err := u.orders.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, domainErrors.Wrap("list volunteer orders", err)
	}
	return filterOrders(orders, func(o model.Order) bool { return inCategory(o, category) }), nil
}
