package usecase

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/polkiloo/sanda/internal/config"
	"github.com/polkiloo/sanda/internal/domain/model"
	testhelpers "github.com/polkiloo/sanda/internal/test"
)

type fixture struct {
	store      *testhelpers.MemoryStore
	orders     *OrderUseCase
	assignment *AssignmentUseCase
	volunteers *VolunteerUseCase
	logs       *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	store := testhelpers.NewMemoryStore()
	cfg := &config.Config{CleanupThreshold: config.DefaultCleanupThreshold, DefaultMaxActiveOrders: model.DefaultMaxActiveOrders}
	return &fixture{
		store:      store,
		orders:     NewOrderUseCase(store.Users(), store.Catalog(), store.Orders(), cfg, logger),
		assignment: NewAssignmentUseCase(store.Orders(), store.Volunteers(), logger),
		volunteers: NewVolunteerUseCase(store.Volunteers(), testhelpers.HasherStub{}, cfg, logger),
		logs:       logs,
	}
}

// seedOrders stores count orders for the requester; the first done of them are Done,
// completed in reverse id order so cleanup order differs from insertion order.
func (f *fixture) seedOrders(requesterID int64, count, done int, volunteerID int64) (doneIDs []int64) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		o := model.Order{RequesterID: requesterID, Category: "Shopping", Status: model.OrderStatusPending}
		if i < done {
			vid := volunteerID
			completed := base.Add(time.Duration(done-i) * time.Hour)
			o.Status = model.OrderStatusDone
			o.VolunteerID = &vid
			o.CompletedAt = &completed
		}
		id := f.store.PutOrder(o)
		if i < done {
			doneIDs = append([]int64{id}, doneIDs...)
		}
	}
	return doneIDs
}

func ptr[T any](v T) *T {
	return &v
}
