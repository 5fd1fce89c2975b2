package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/polkiloo/sanda/internal/domain/model"
)

// CleanupFacade exposes the subset of application functionality required by the sweeper.
type CleanupFacade interface {
	RequestersForCleanup(ctx context.Context, limit int) ([]int64, error)
	CleanupDoneOrders(ctx context.Context, requesterID int64) (*model.CleanupReport, error)
}

// CleanupSweeper periodically removes Done orders of requesters over the cleanup
// threshold, spreading requesters across a fixed pool of workers.
type CleanupSweeper struct {
	facade    CleanupFacade
	interval  time.Duration
	batchSize int
	workers   int
	logger    *zap.Logger

	jobs   chan int64
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewCleanupSweeper constructs the sweeper worker pool.
func NewCleanupSweeper(facade CleanupFacade, interval time.Duration, batchSize, workers int, logger *zap.Logger) *CleanupSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanupSweeper{
		facade:    facade,
		interval:  interval,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
	}
}

// Start launches background sweeping. Calling Start on a running sweeper is a no-op.
func (s *CleanupSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.jobs = make(chan int64, s.batchSize)

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx, s.jobs)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx, s.jobs)
}

// Stop cancels sweeping and waits for in-flight cleanups to finish.
func (s *CleanupSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *CleanupSweeper) dispatch(ctx context.Context, jobs chan<- int64) {
	defer s.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx, jobs)
		}
	}
}

func (s *CleanupSweeper) sweep(ctx context.Context, jobs chan<- int64) {
	requesters, err := s.facade.RequestersForCleanup(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("select requesters for cleanup failed", zap.Error(err))
		return
	}
	if len(requesters) > 0 {
		s.logger.Debug("cleanup sweep", zap.Int("requesters", len(requesters)))
	}
	for _, id := range requesters {
		select {
		case <-ctx.Done():
			return
		case jobs <- id:
		}
	}
}

func (s *CleanupSweeper) worker(ctx context.Context, jobs <-chan int64) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-jobs:
			if !ok {
				return
			}
			s.cleanup(ctx, id)
		}
	}
}

func (s *CleanupSweeper) cleanup(ctx context.Context, requesterID int64) {
	report, err := s.facade.CleanupDoneOrders(ctx, requesterID)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("cleanup failed", zap.Int64("requester_id", requesterID), zap.Error(err))
		}
		return
	}
	s.logger.Info("requester cleaned up",
		zap.Int64("requester_id", requesterID),
		zap.Int("removed", report.Count()))
}
