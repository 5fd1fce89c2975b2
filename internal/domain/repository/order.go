package repository

import (
	"context"

	"github.com/polkiloo/sanda/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
// Methods that change assignment also keep the holding volunteer's active-order
// counter in step inside the same transaction.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	ListAvailable(ctx context.Context) ([]model.Order, error)
	ListByVolunteer(ctx context.Context, volunteerID int64) ([]model.Order, error)
	ListByUser(ctx context.Context, userID int64, status model.OrderStatus, exclude bool) ([]model.Order, error)
	CountByUser(ctx context.Context, userID int64) (int, error)

	// Assign claims a pending, unassigned order. It fails with ErrNotFound when the
	// volunteer is missing, ErrCapacityReached when it is full and ErrNotAvailable
	// when the order can no longer be claimed.
	Assign(ctx context.Context, orderID, volunteerID int64) (*model.Order, error)
	// Release returns an order held by volunteerID to the pending pool.
	Release(ctx context.Context, orderID, volunteerID int64) (*model.Order, error)
	// Transition moves an order from one status to another, failing with ErrConflict
	// when the stored status no longer equals from.
	Transition(ctx context.Context, orderID int64, from, to model.OrderStatus) (*model.Order, error)
	// DeleteIfStatus removes the order only while its status is one of statuses.
	DeleteIfStatus(ctx context.Context, orderID int64, statuses ...model.OrderStatus) error
	// PurgeDone deletes every Done order of the user and returns their ids oldest completion first.
	PurgeDone(ctx context.Context, userID int64) ([]int64, error)
	// UsersForCleanup returns users owning at least minOrders orders, one of them Done.
	UsersForCleanup(ctx context.Context, minOrders, limit int) ([]int64, error)
}
