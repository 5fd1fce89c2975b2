package test

import (
	"context"
	"sync"

	"github.com/polkiloo/sanda/internal/domain/model"
)

// CleanupFacadeStub feeds requester batches to the cleanup sweeper and records cleanups.
type CleanupFacadeStub struct {
	// Batches are returned by successive RequestersForCleanup calls; later calls get nothing.
	Batches     [][]int64
	SelectErr   error
	CleanupFn   func(context.Context, int64) (*model.CleanupReport, error)
	mu          sync.Mutex
	selectCalls int
	limits      []int
	cleaned     []int64
}

// RequestersForCleanup returns the next configured batch.
func (s *CleanupFacadeStub) RequestersForCleanup(_ context.Context, limit int) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits = append(s.limits, limit)
	if s.SelectErr != nil {
		return nil, s.SelectErr
	}
	s.selectCalls++
	if s.selectCalls <= len(s.Batches) {
		return s.Batches[s.selectCalls-1], nil
	}
	return nil, nil
}

// CleanupDoneOrders records the requester and returns the configured report.
func (s *CleanupFacadeStub) CleanupDoneOrders(ctx context.Context, requesterID int64) (*model.CleanupReport, error) {
	if s.CleanupFn != nil {
		report, err := s.CleanupFn(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		s.record(requesterID)
		return report, nil
	}
	s.record(requesterID)
	return &model.CleanupReport{RequesterID: requesterID, Removed: []int64{requesterID * 10}}, nil
}

func (s *CleanupFacadeStub) record(requesterID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleaned = append(s.cleaned, requesterID)
}

// Cleaned returns a copy of the requesters cleaned so far.
func (s *CleanupFacadeStub) Cleaned() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.cleaned...)
}

// Limits returns the batch limits passed to RequestersForCleanup.
func (s *CleanupFacadeStub) Limits() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.limits...)
}
