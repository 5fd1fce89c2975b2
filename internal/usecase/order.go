package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/polkiloo/sanda/internal/config"
	domainErrors "github.com/polkiloo/sanda/internal/domain/errors"
	"github.com/polkiloo/sanda/internal/domain/model"
	"github.com/polkiloo/sanda/internal/domain/repository"
)

// NewOrder is the requester input for an assistance request.
type NewOrder struct {
	RequesterID      int64
	Name             string
	Comment          string
	PhoneNumber      string
	Location         string
	Category         string
	Item             model.ItemReference
	GenderPreference string
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	users            repository.UserRepository
	catalog          repository.CatalogRepository
	orders           repository.OrderRepository
	cleanupThreshold int
	logger           *zap.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	users repository.UserRepository,
	catalog repository.CatalogRepository,
	orders repository.OrderRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *OrderUseCase {
	threshold := config.DefaultCleanupThreshold
	if cfg != nil && cfg.CleanupThreshold > 0 {
		threshold = cfg.CleanupThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderUseCase{
		users:            users,
		catalog:          catalog,
		orders:           orders,
		cleanupThreshold: threshold,
		logger:           logger.Named("orders"),
	}
}

// Create stores a new pending order and cleans the requester's Done orders once
// the requester reaches the cleanup threshold.
func (u *OrderUseCase) Create(ctx context.Context, in NewOrder) (*model.Order, error) {
	if in.Item.IsSet() && in.Item.ID <= 0 {
		return nil, domainErrors.NewValidationError("invalid item reference",
			domainErrors.ValidationDetail{Field: "item", Message: "id must be positive"})
	}

	user, err := u.users.GetByID(ctx, in.RequesterID)
	if err != nil {
		return nil, domainErrors.Wrap("lookup requester", err)
	}

	order := &model.Order{
		RequesterID:      user.ID,
		RequesterName:    user.DisplayName(),
		Name:             strings.TrimSpace(in.Name),
		Comment:          in.Comment,
		PhoneNumber:      strings.TrimSpace(in.PhoneNumber),
		Location:         strings.TrimSpace(in.Location),
		Category:         strings.TrimSpace(in.Category),
		Item:             in.Item,
		GenderPreference: strings.ToLower(strings.TrimSpace(in.GenderPreference)),
		Status:           model.OrderStatusPending,
	}
	if order.Location == "" {
		order.Location = model.DefaultLocation
	}

	if in.Item.IsSet() {
		item, err := u.catalog.Lookup(ctx, in.Item)
		if err != nil {
			return nil, domainErrors.Wrap("lookup catalog item", err)
		}
		order.ItemImage = item.Image
		order.Category = item.Category
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, domainErrors.Wrap("create order", err)
	}
	u.logger.Info("order created",
		zap.Int64("order_id", created.ID),
		zap.Int64("requester_id", created.RequesterID),
		zap.String("category", created.Category))

	u.cleanupIfDue(ctx, created.RequesterID)
	return created, nil
}

func (u *OrderUseCase) cleanupIfDue(ctx context.Context, requesterID int64) {
	count, err := u.orders.CountByUser(ctx, requesterID)
	if err != nil {
		u.logger.Warn("count requester orders failed", zap.Int64("requester_id", requesterID), zap.Error(err))
		return
	}
	if count < u.cleanupThreshold {
		return
	}
	if _, err := u.CleanupDone(ctx, requesterID); err != nil {
		u.logger.Warn("cleanup after create failed", zap.Int64("requester_id", requesterID), zap.Error(err))
	}
}

// CleanupDone deletes every Done order of the requester, oldest completion first.
func (u *OrderUseCase) CleanupDone(ctx context.Context, requesterID int64) (*model.CleanupReport, error) {
	removed, err := u.orders.PurgeDone(ctx, requesterID)
	if err != nil {
		return nil, domainErrors.Wrap("purge done orders", err)
	}
	report := &model.CleanupReport{RequesterID: requesterID, Removed: removed}
	if report.Count() > 0 {
		u.logger.Info("done orders cleaned up",
			zap.Int64("requester_id", requesterID),
			zap.Int("removed", report.Count()))
	}
	return report, nil
}

// RequestersForCleanup returns requesters at or over the threshold with at least one Done order.
func (u *OrderUseCase) RequestersForCleanup(ctx context.Context, limit int) ([]int64, error) {
	ids, err := u.orders.UsersForCleanup(ctx, u.cleanupThreshold, limit)
	return ids, domainErrors.Wrap("select requesters for cleanup", err)
}

// Orders lists every order, or only those with the given status.
func (u *OrderUseCase) Orders(ctx context.Context, status string) ([]model.Order, error) {
	if strings.TrimSpace(status) == "" {
		orders, err := u.orders.List(ctx)
		return orders, domainErrors.Wrap("list orders", err)
	}
	parsed, ok := model.ParseOrderStatus(status)
	if !ok {
		return nil, domainErrors.ErrInvalidStatus
	}
	orders, err := u.orders.ListByStatus(ctx, parsed)
	return orders, domainErrors.Wrap("list orders by status", err)
}

// Order returns a single order.
func (u *OrderUseCase) Order(ctx context.Context, id int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	return order, domainErrors.Wrap("get order", err)
}

// UserOrders lists a requester's orders, optionally narrowed to (or excluding) one status.
func (u *OrderUseCase) UserOrders(ctx context.Context, userID int64, status string, exclude bool) ([]model.Order, error) {
	var parsed model.OrderStatus
	if strings.TrimSpace(status) != "" {
		var ok bool
		if parsed, ok = model.ParseOrderStatus(status); !ok {
			return nil, domainErrors.ErrInvalidStatus
		}
	}
	orders, err := u.orders.ListByUser(ctx, userID, parsed, exclude)
	return orders, domainErrors.Wrap("list user orders", err)
}

// UserOrderCount counts a requester's orders in every status.
func (u *OrderUseCase) UserOrderCount(ctx context.Context, userID int64) (int, error) {
	count, err := u.orders.CountByUser(ctx, userID)
	return count, domainErrors.Wrap("count user orders", err)
}

// AdvanceStatus applies one step of the lifecycle table. Acceptance goes through
// AssignmentUseCase.Accept and is rejected here.
func (u *OrderUseCase) AdvanceStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	target, ok := model.ParseOrderStatus(status)
	if !ok {
		return nil, domainErrors.ErrInvalidStatus
	}

	current, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, domainErrors.Wrap("get order", err)
	}
	if !current.Status.CanTransitionTo(target) {
		return nil, domainErrors.ErrInvalidTransition
	}

	updated, err := u.orders.Transition(ctx, id, current.Status, target)
	if err != nil {
		return nil, domainErrors.Wrap("transition order", err)
	}
	u.logger.Info("order status advanced",
		zap.Int64("order_id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(target)))
	return updated, nil
}

// CancelByRequester deletes an order that has not been started yet.
func (u *OrderUseCase) CancelByRequester(ctx context.Context, id int64) error {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return domainErrors.Wrap("get order", err)
	}
	if order.Status.Rank() >= model.OrderStatusInProgress.Rank() {
		return domainErrors.ErrConflict
	}
	if err := u.orders.DeleteIfStatus(ctx, id, model.OrderStatusPending, model.OrderStatusAccepted); err != nil {
		return domainErrors.Wrap("delete order", err)
	}
	u.logger.Info("order cancelled by requester", zap.Int64("order_id", id))
	return nil
}

// MarkDoneAndDelete removes a finished order.
func (u *OrderUseCase) MarkDoneAndDelete(ctx context.Context, id int64) error {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return domainErrors.Wrap("get order", err)
	}
	if order.Status != model.OrderStatusDone {
		return domainErrors.ErrConflict
	}
	return domainErrors.Wrap("delete order", u.orders.DeleteIfStatus(ctx, id, model.OrderStatusDone))
}
