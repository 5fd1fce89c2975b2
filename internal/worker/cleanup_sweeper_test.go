package worker

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/polkiloo/sanda/internal/domain/model"
	testhelpers "github.com/polkiloo/sanda/internal/test"
	"github.com/polkiloo/sanda/internal/usecase"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewCleanupSweeperDefaults(t *testing.T) {
	s := NewCleanupSweeper(&testhelpers.CleanupFacadeStub{}, 0, 0, 0, nil)
	if s.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", s.batchSize)
	}
	if s.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", s.workers)
	}
	if s.interval != time.Minute {
		t.Fatalf("expected interval default to 1m, got %s", s.interval)
	}
	if s.logger == nil {
		t.Fatal("expected nop logger")
	}
}

func TestCleanupSweeperCleansSelectedRequesters(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	facade := &testhelpers.CleanupFacadeStub{Batches: [][]int64{{1, 2, 3}, {4}}}
	s := NewCleanupSweeper(facade, 5*time.Millisecond, 8, 3, zap.New(core))

	s.Start(context.Background())
	waitFor(t, time.Second, func() bool { return len(facade.Cleaned()) == 4 })
	s.Stop()

	cleaned := facade.Cleaned()
	sort.Slice(cleaned, func(i, j int) bool { return cleaned[i] < cleaned[j] })
	for i, id := range []int64{1, 2, 3, 4} {
		if cleaned[i] != id {
			t.Fatalf("expected requesters 1..4 cleaned once each, got %v", cleaned)
		}
	}
	for _, limit := range facade.Limits() {
		if limit != 8 {
			t.Fatalf("expected batch limit 8, got %d", limit)
		}
	}
	if got := logs.FilterMessage("requester cleaned up").Len(); got != 4 {
		t.Fatalf("expected 4 cleanup log entries, got %d", got)
	}
}

func TestCleanupSweeperLogsSelectFailure(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	facade := &testhelpers.CleanupFacadeStub{SelectErr: errors.New("db down")}
	s := NewCleanupSweeper(facade, 5*time.Millisecond, 1, 1, zap.New(core))

	s.Start(context.Background())
	waitFor(t, time.Second, func() bool { return logs.FilterMessage("select requesters for cleanup failed").Len() > 0 })
	s.Stop()

	if len(facade.Cleaned()) != 0 {
		t.Fatalf("expected no cleanups, got %v", facade.Cleaned())
	}
}

func TestCleanupSweeperContinuesAfterCleanupFailure(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	facade := &testhelpers.CleanupFacadeStub{
		Batches: [][]int64{{1, 2}},
		CleanupFn: func(_ context.Context, id int64) (*model.CleanupReport, error) {
			if id == 1 {
				return nil, errors.New("locked")
			}
			return &model.CleanupReport{RequesterID: id}, nil
		},
	}
	s := NewCleanupSweeper(facade, 5*time.Millisecond, 2, 1, zap.New(core))

	s.Start(context.Background())
	waitFor(t, time.Second, func() bool { return len(facade.Cleaned()) == 1 })
	s.Stop()

	if cleaned := facade.Cleaned(); cleaned[0] != 2 {
		t.Fatalf("expected requester 2 cleaned, got %v", cleaned)
	}
	entries := logs.FilterMessage("cleanup failed").AllUntimed()
	if len(entries) != 1 || entries[0].ContextMap()["requester_id"] != int64(1) {
		t.Fatalf("expected one failure logged for requester 1, got %v", entries)
	}
}

func TestCleanupSweeperStartIsIdempotent(t *testing.T) {
	facade := &testhelpers.CleanupFacadeStub{Batches: [][]int64{{7}}}
	s := NewCleanupSweeper(facade, 5*time.Millisecond, 1, 2, nil)

	s.Start(context.Background())
	s.Start(context.Background())
	waitFor(t, time.Second, func() bool { return len(facade.Cleaned()) == 1 })
	s.Stop()
	s.Stop()

	if got := facade.Cleaned(); len(got) != 1 {
		t.Fatalf("expected requester cleaned once, got %v", got)
	}
}

func TestCleanupSweeperStopsWithParentContext(t *testing.T) {
	s := NewCleanupSweeper(&testhelpers.CleanupFacadeStub{}, time.Hour, 1, 2, nil)
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

// orderCleanup adapts the order use case to the sweeper's facade.
type orderCleanup struct {
	orders *usecase.OrderUseCase
}

func (o orderCleanup) RequestersForCleanup(ctx context.Context, limit int) ([]int64, error) {
	return o.orders.RequestersForCleanup(ctx, limit)
}

func (o orderCleanup) CleanupDoneOrders(ctx context.Context, requesterID int64) (*model.CleanupReport, error) {
	return o.orders.CleanupDone(ctx, requesterID)
}

func TestCleanupSweeperWithOrderUseCase(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	busy := store.AddUser("Hana", "Youssef")
	quiet := store.AddUser("Adel", "Karim")
	volunteer := store.AddVolunteer(model.Volunteer{})
	completed := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 22; i++ {
		order := model.Order{RequesterID: busy, Status: model.OrderStatusPending}
		if i%2 == 0 {
			order.Status = model.OrderStatusDone
			order.VolunteerID = &volunteer
			order.CompletedAt = &completed
		}
		store.PutOrder(order)
	}
	for i := 0; i < 3; i++ {
		store.PutOrder(model.Order{RequesterID: quiet, Status: model.OrderStatusDone, VolunteerID: &volunteer, CompletedAt: &completed})
	}

	orders := usecase.NewOrderUseCase(store.Users(), store.Catalog(), store.Orders(), nil, nil)
	s := NewCleanupSweeper(orderCleanup{orders: orders}, 5*time.Millisecond, 10, 2, nil)
	s.Start(context.Background())
	waitFor(t, time.Second, func() bool {
		n, _ := orders.UserOrderCount(context.Background(), busy)
		return n == 11
	})
	s.Stop()

	n, err := orders.UserOrderCount(context.Background(), quiet)
	if err != nil {
		t.Fatalf("count quiet requester: %v", err)
	}
	if n != 3 {
		t.Fatalf("requester below threshold must keep done orders, got %d", n)
	}
}
