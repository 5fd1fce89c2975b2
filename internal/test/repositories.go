package test

import (
	"context"

	"github.com/polkiloo/sanda/internal/domain/model"
	"github.com/polkiloo/sanda/internal/domain/repository"
)

// OrderRepositoryStub overrides selected order repository calls and forwards the rest
// to the embedded repository, usually a MemoryStore.
type OrderRepositoryStub struct {
	repository.OrderRepository

	CountByUserFn func(context.Context, int64) (int, error)
	PurgeDoneFn   func(context.Context, int64) ([]int64, error)
	AssignFn      func(context.Context, int64, int64) (*model.Order, error)
	TransitionFn  func(context.Context, int64, model.OrderStatus, model.OrderStatus) (*model.Order, error)

	PurgeCalls []int64
}

// CountByUser returns the override result when configured.
func (s *OrderRepositoryStub) CountByUser(ctx context.Context, userID int64) (int, error) {
	if s.CountByUserFn != nil {
		return s.CountByUserFn(ctx, userID)
	}
	return s.OrderRepository.CountByUser(ctx, userID)
}

// PurgeDone records the requester and delegates.
func (s *OrderRepositoryStub) PurgeDone(ctx context.Context, userID int64) ([]int64, error) {
	s.PurgeCalls = append(s.PurgeCalls, userID)
	if s.PurgeDoneFn != nil {
		return s.PurgeDoneFn(ctx, userID)
	}
	return s.OrderRepository.PurgeDone(ctx, userID)
}

// Assign returns the override result when configured.
func (s *OrderRepositoryStub) Assign(ctx context.Context, orderID, volunteerID int64) (*model.Order, error) {
	if s.AssignFn != nil {
		return s.AssignFn(ctx, orderID, volunteerID)
	}
	return s.OrderRepository.Assign(ctx, orderID, volunteerID)
}

// Transition returns the override result when configured.
func (s *OrderRepositoryStub) Transition(ctx context.Context, orderID int64, from, to model.OrderStatus) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, orderID, from, to)
	}
	return s.OrderRepository.Transition(ctx, orderID, from, to)
}

var _ repository.OrderRepository = (*OrderRepositoryStub)(nil)
