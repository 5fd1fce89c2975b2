package test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/sanda/internal/domain/errors"
	"github.com/polkiloo/sanda/internal/domain/model"
	"github.com/polkiloo/sanda/internal/domain/repository"
)

// MemoryStore is a mutex-guarded in-memory implementation of every repository port.
// It mirrors the PostgreSQL guards so use case scenarios and races can run without a database.
type MemoryStore struct {
	mu sync.Mutex

	users      map[int64]model.User
	catalog    map[model.ItemReference]model.CatalogItem
	orders     map[int64]*model.Order
	volunteers map[int64]*model.Volunteer
	wallets    map[int64]*model.Balance

	nextOrder     int64
	nextVolunteer int64
	nextUser      int64

	base time.Time
	tick int64
	err  error
}

var _ repository.Factory = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[int64]model.User),
		catalog:    make(map[model.ItemReference]model.CatalogItem),
		orders:     make(map[int64]*model.Order),
		volunteers: make(map[int64]*model.Volunteer),
		wallets:    make(map[int64]*model.Balance),
		base:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Fail makes every subsequent repository call return err until Fail(nil).
func (s *MemoryStore) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// now returns strictly increasing instants so ordering by time is deterministic.
func (s *MemoryStore) now() time.Time {
	s.tick++
	return s.base.Add(time.Duration(s.tick) * time.Second)
}

// AddUser registers a requester and returns its id.
func (s *MemoryStore) AddUser(firstName, lastName string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUser++
	s.users[s.nextUser] = model.User{ID: s.nextUser, FirstName: firstName, LastName: lastName, CreatedAt: s.now()}
	return s.nextUser
}

// AddCatalogItem registers a product or service.
func (s *MemoryStore) AddCatalogItem(item model.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog[item.Ref] = item
}

// AddVolunteer stores a volunteer with defaults for the fields tests rarely care about.
func (s *MemoryStore) AddVolunteer(v model.Volunteer) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextVolunteer++
	v.ID = s.nextVolunteer
	if v.FirstName == "" {
		v.FirstName = RandomName(3, 8)
	}
	if v.LastName == "" {
		v.LastName = RandomName(3, 8)
	}
	if v.PhoneNumber == "" {
		v.PhoneNumber = "01" + RandomDigits(9)
	}
	if v.Email == "" {
		v.Email = RandomEmail()
	}
	if v.NationalID == "" {
		v.NationalID = RandomDigits(14)
	}
	if v.Gender == "" {
		v.Gender = model.GenderFemale
	}
	if v.Age == 0 {
		v.Age = 30
	}
	if v.MaxActiveOrders == 0 {
		v.MaxActiveOrders = model.DefaultMaxActiveOrders
	}
	v.CreatedAt = s.now()
	v.UpdatedAt = v.CreatedAt
	stored := v
	s.volunteers[v.ID] = &stored
	return v.ID
}

// PutOrder stores an order as given, bypassing lifecycle checks. Used to arrange fixtures.
func (s *MemoryStore) PutOrder(o model.Order) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == 0 {
		s.nextOrder++
		o.ID = s.nextOrder
	} else if o.ID > s.nextOrder {
		s.nextOrder = o.ID
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.now()
	}
	if o.StatusUpdatedAt.IsZero() {
		o.StatusUpdatedAt = o.CreatedAt
	}
	stored := o
	s.orders[o.ID] = &stored
	if o.VolunteerID != nil {
		s.refreshActive(*o.VolunteerID)
	}
	return o.ID
}

// Order returns a snapshot of the stored order.
func (s *MemoryStore) Order(id int64) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, false
	}
	return *o, true
}

// Volunteer returns a snapshot of the stored volunteer.
func (s *MemoryStore) Volunteer(id int64) (model.Volunteer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.volunteers[id]
	if !ok {
		return model.Volunteer{}, false
	}
	return *v, true
}

// ActiveOrders counts Accepted and InProgress orders held by the volunteer.
func (s *MemoryStore) ActiveOrders(volunteerID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countActive(volunteerID)
}

func (s *MemoryStore) countActive(volunteerID int64) int {
	count := 0
	for _, o := range s.orders {
		if o.AssignedTo(volunteerID) && o.Status.Active() {
			count++
		}
	}
	return count
}

func (s *MemoryStore) refreshActive(volunteerID int64) {
	if v, ok := s.volunteers[volunteerID]; ok {
		v.CurrentActiveOrders = s.countActive(volunteerID)
		v.UpdatedAt = s.now()
	}
}

func (s *MemoryStore) Users() repository.UserRepository { return memoryUsers{s} }
func (s *MemoryStore) Catalog() repository.CatalogRepository { return memoryCatalog{s} }
func (s *MemoryStore) Orders() repository.OrderRepository { return memoryOrders{s} }
func (s *MemoryStore) Volunteers() repository.VolunteerRepository { return memoryVolunteers{s} }
func (s *MemoryStore) Wallets() repository.WalletRepository { return memoryWallets{s} }

func (s *MemoryStore) VolunteerBalances() repository.VolunteerBalanceRepository {
	return memoryVolunteerBalances{s}
}

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &u, nil
}

type memoryCatalog struct{ s *MemoryStore }

func (r memoryCatalog) Lookup(_ context.Context, ref model.ItemReference) (*model.CatalogItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	item, ok := r.s.catalog[ref]
	if !ok || !ref.IsSet() {
		return nil, domainErrors.ErrNotFound
	}
	return &item, nil
}

type memoryOrders struct{ s *MemoryStore }

func (r memoryOrders) Create(_ context.Context, order *model.Order) (*model.Order, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if _, ok := s.users[order.RequesterID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	created := *order
	s.nextOrder++
	created.ID = s.nextOrder
	created.Status = model.OrderStatusPending
	created.VolunteerID = nil
	created.InProgressAt = nil
	created.CompletedAt = nil
	created.CreatedAt = s.now()
	created.StatusUpdatedAt = created.CreatedAt
	stored := created
	s.orders[created.ID] = &stored
	return &created, nil
}

func (r memoryOrders) GetByID(_ context.Context, id int64) (*model.Order, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	o, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (r memoryOrders) filter(keep func(*model.Order) bool, newestFirst bool) ([]model.Order, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []model.Order
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r memoryOrders) List(context.Context) ([]model.Order, error) {
	return r.filter(func(*model.Order) bool { return true }, true)
}

func (r memoryOrders) ListByStatus(_ context.Context, status model.OrderStatus) ([]model.Order, error) {
	return r.filter(func(o *model.Order) bool { return o.Status == status }, true)
}

func (r memoryOrders) ListAvailable(context.Context) ([]model.Order, error) {
	return r.filter(func(o *model.Order) bool { return o.Claimable() }, false)
}

func (r memoryOrders) ListByVolunteer(_ context.Context, volunteerID int64) ([]model.Order, error) {
	return r.filter(func(o *model.Order) bool {
		return o.AssignedTo(volunteerID) && o.Status != model.OrderStatusDone
	}, true)
}

func (r memoryOrders) ListByUser(_ context.Context, userID int64, status model.OrderStatus, exclude bool) ([]model.Order, error) {
	return r.filter(func(o *model.Order) bool {
		if o.RequesterID != userID {
			return false
		}
		if status == "" {
			return true
		}
		return (o.Status == status) != exclude
	}, true)
}

func (r memoryOrders) CountByUser(_ context.Context, userID int64) (int, error) {
	orders, err := r.ListByUser(context.Background(), userID, "", false)
	return len(orders), err
}

func (r memoryOrders) Assign(_ context.Context, orderID, volunteerID int64) (*model.Order, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.volunteers[volunteerID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	active := s.countActive(volunteerID)
	if active >= v.MaxActiveOrders {
		return nil, domainErrors.ErrCapacityReached
	}
	o, ok := s.orders[orderID]
	if !ok || !o.Claimable() {
		return nil, domainErrors.ErrNotAvailable
	}

	now := s.now()
	id := volunteerID
	o.VolunteerID = &id
	o.Status = model.OrderStatusAccepted
	o.StatusUpdatedAt = now
	v.CurrentActiveOrders = active + 1
	v.LastOrderAcceptedAt = &now
	copied := *o
	return &copied, nil
}

func (r memoryOrders) Release(_ context.Context, orderID, volunteerID int64) (*model.Order, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	o, ok := s.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if _, known := s.volunteers[volunteerID]; !known || !o.AssignedTo(volunteerID) {
		return nil, domainErrors.ErrForbidden
	}
	if !o.Status.Active() {
		return nil, domainErrors.ErrConflict
	}
	o.VolunteerID = nil
	o.Status = model.OrderStatusPending
	o.InProgressAt = nil
	o.StatusUpdatedAt = s.now()
	s.refreshActive(volunteerID)
	copied := *o
	return &copied, nil
}

func (r memoryOrders) Transition(_ context.Context, orderID int64, from, to model.OrderStatus) (*model.Order, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	o, ok := s.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if o.Status != from {
		return nil, domainErrors.ErrConflict
	}
	now := s.now()
	o.Status = to
	o.StatusUpdatedAt = now
	switch to {
	case model.OrderStatusInProgress:
		o.InProgressAt = &now
	case model.OrderStatusDone:
		o.CompletedAt = &now
	}
	if o.VolunteerID != nil && from.Active() != to.Active() {
		s.refreshActive(*o.VolunteerID)
	}
	copied := *o
	return &copied, nil
}

func (r memoryOrders) DeleteIfStatus(_ context.Context, orderID int64, statuses ...model.OrderStatus) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	o, ok := s.orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	allowed := false
	for _, status := range statuses {
		if o.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return domainErrors.ErrConflict
	}
	delete(s.orders, orderID)
	if o.VolunteerID != nil {
		s.refreshActive(*o.VolunteerID)
	}
	return nil
}

func (r memoryOrders) PurgeDone(_ context.Context, userID int64) ([]int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var done []*model.Order
	for _, o := range s.orders {
		if o.RequesterID == userID && o.Status == model.OrderStatusDone {
			done = append(done, o)
		}
	}
	sort.Slice(done, func(i, j int) bool {
		ti, tj := done[i].CompletionTime(), done[j].CompletionTime()
		if ti.Equal(tj) {
			return done[i].ID < done[j].ID
		}
		return ti.Before(tj)
	})
	removed := make([]int64, 0, len(done))
	for _, o := range done {
		delete(s.orders, o.ID)
		removed = append(removed, o.ID)
	}
	return removed, nil
}

func (r memoryOrders) UsersForCleanup(_ context.Context, minOrders, limit int) ([]int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	total := make(map[int64]int)
	done := make(map[int64]int)
	for _, o := range s.orders {
		total[o.RequesterID]++
		if o.Status == model.OrderStatusDone {
			done[o.RequesterID]++
		}
	}
	var users []int64
	for id, count := range total {
		if count >= minOrders && done[id] > 0 {
			users = append(users, id)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

type memoryVolunteers struct{ s *MemoryStore }

func (r memoryVolunteers) emailTaken(email string, except int64) bool {
	for id, v := range r.s.volunteers {
		if id != except && strings.EqualFold(v.Email, email) {
			return true
		}
	}
	return false
}

func (r memoryVolunteers) Create(_ context.Context, v *model.Volunteer) (*model.Volunteer, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if r.emailTaken(v.Email, 0) {
		return nil, domainErrors.ErrAlreadyExists
	}
	created := *v
	s.nextVolunteer++
	created.ID = s.nextVolunteer
	created.CurrentActiveOrders = 0
	created.LastOrderAcceptedAt = nil
	created.Balance = decimal.Zero
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	stored := created
	s.volunteers[created.ID] = &stored
	return &created, nil
}

func (r memoryVolunteers) GetByID(_ context.Context, id int64) (*model.Volunteer, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.volunteers[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (r memoryVolunteers) List(context.Context) ([]model.Volunteer, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.Volunteer, 0, len(s.volunteers))
	for _, v := range s.volunteers {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryVolunteers) Update(_ context.Context, v *model.Volunteer) (*model.Volunteer, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	stored, ok := s.volunteers[v.ID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if r.emailTaken(v.Email, v.ID) {
		return nil, domainErrors.ErrAlreadyExists
	}
	updated := *v
	updated.CurrentActiveOrders = stored.CurrentActiveOrders
	updated.LastOrderAcceptedAt = stored.LastOrderAcceptedAt
	updated.Balance = stored.Balance
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = s.now()
	*stored = updated
	return &updated, nil
}

func (r memoryVolunteers) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.volunteers[id]; !ok {
		return domainErrors.ErrNotFound
	}
	now := s.now()
	for _, o := range s.orders {
		if !o.AssignedTo(id) {
			continue
		}
		if o.Status.Active() {
			o.Status = model.OrderStatusPending
			o.InProgressAt = nil
			o.StatusUpdatedAt = now
		}
		o.VolunteerID = nil
	}
	delete(s.volunteers, id)
	return nil
}

// ledgerOps applies balance arithmetic to whichever record owns the amount.
type ledgerOps struct {
	s      *MemoryStore
	locate func(ownerID int64) (amount *decimal.Decimal, updated *time.Time, ok bool)
}

func (l ledgerOps) Balance(_ context.Context, ownerID int64) (*model.Balance, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if l.s.err != nil {
		return nil, l.s.err
	}
	amount, updated, ok := l.locate(ownerID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &model.Balance{OwnerID: ownerID, Amount: *amount, UpdatedAt: *updated}, nil
}

func (l ledgerOps) Deposit(_ context.Context, ownerID int64, amount decimal.Decimal) (*model.Balance, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if l.s.err != nil {
		return nil, l.s.err
	}
	current, updated, ok := l.locate(ownerID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	*current = current.Add(amount)
	*updated = l.s.now()
	return &model.Balance{OwnerID: ownerID, Amount: *current, UpdatedAt: *updated}, nil
}

func (l ledgerOps) Withdraw(_ context.Context, ownerID int64, amount decimal.Decimal) (*model.Balance, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if l.s.err != nil {
		return nil, l.s.err
	}
	current, updated, ok := l.locate(ownerID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if current.LessThan(amount) {
		return nil, domainErrors.ErrInsufficientFunds
	}
	*current = current.Sub(amount)
	*updated = l.s.now()
	return &model.Balance{OwnerID: ownerID, Amount: *current, UpdatedAt: *updated}, nil
}

type memoryVolunteerBalances struct{ s *MemoryStore }

func (r memoryVolunteerBalances) ops() ledgerOps {
	return ledgerOps{s: r.s, locate: func(id int64) (*decimal.Decimal, *time.Time, bool) {
		v, ok := r.s.volunteers[id]
		if !ok {
			return nil, nil, false
		}
		return &v.Balance, &v.UpdatedAt, true
	}}
}

func (r memoryVolunteerBalances) Balance(ctx context.Context, id int64) (*model.Balance, error) {
	return r.ops().Balance(ctx, id)
}

func (r memoryVolunteerBalances) Deposit(ctx context.Context, id int64, amount decimal.Decimal) (*model.Balance, error) {
	return r.ops().Deposit(ctx, id, amount)
}

func (r memoryVolunteerBalances) Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (*model.Balance, error) {
	return r.ops().Withdraw(ctx, id, amount)
}

type memoryWallets struct{ s *MemoryStore }

func (r memoryWallets) ops() ledgerOps {
	return ledgerOps{s: r.s, locate: func(id int64) (*decimal.Decimal, *time.Time, bool) {
		w, ok := r.s.wallets[id]
		if !ok {
			return nil, nil, false
		}
		return &w.Amount, &w.UpdatedAt, true
	}}
}

func (r memoryWallets) Balance(ctx context.Context, id int64) (*model.Balance, error) {
	return r.ops().Balance(ctx, id)
}

func (r memoryWallets) Deposit(ctx context.Context, id int64, amount decimal.Decimal) (*model.Balance, error) {
	return r.ops().Deposit(ctx, id, amount)
}

func (r memoryWallets) Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (*model.Balance, error) {
	return r.ops().Withdraw(ctx, id, amount)
}

func (r memoryWallets) Open(_ context.Context, userID int64) (*model.Balance, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if _, ok := s.users[userID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	if _, ok := s.wallets[userID]; ok {
		return nil, domainErrors.ErrAlreadyExists
	}
	w := &model.Balance{OwnerID: userID, Amount: decimal.Zero, UpdatedAt: s.now()}
	s.wallets[userID] = w
	copied := *w
	return &copied, nil
}
