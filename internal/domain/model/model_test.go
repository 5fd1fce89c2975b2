package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
		rank  int
	}{
		{"pending", OrderStatusPending, "Pending", 0},
		{"accepted", OrderStatusAccepted, "Accepted", 1},
		{"in progress", OrderStatusInProgress, "InProgress", 2},
		{"done", OrderStatusDone, "Done", 3},
		{"cancelled", OrderStatusCancelled, "Cancelled", 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if tc.got.Rank() != tc.rank {
				t.Fatalf("expected rank %d, got %d", tc.rank, tc.got.Rank())
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %s to be valid", tc.got)
			}
		})
	}

	if OrderStatus("Lost").Valid() || OrderStatus("Lost").Rank() != -1 {
		t.Fatal("unknown status must be invalid")
	}
}

func TestOrderStatusAssignmentSets(t *testing.T) {
	assigned := map[OrderStatus]bool{
		OrderStatusPending:    false,
		OrderStatusAccepted:   true,
		OrderStatusInProgress: true,
		OrderStatusDone:       true,
		OrderStatusCancelled:  false,
	}
	for status, want := range assigned {
		if status.Assigned() != want {
			t.Errorf("Assigned(%s) = %v, want %v", status, status.Assigned(), want)
		}
	}
	if OrderStatusDone.Active() {
		t.Error("done orders do not count against capacity")
	}
	if !OrderStatusInProgress.Active() || !OrderStatusAccepted.Active() {
		t.Error("accepted and in-progress orders are active")
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	allowed := [][2]OrderStatus{
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusAccepted, OrderStatusInProgress},
		{OrderStatusInProgress, OrderStatusDone},
	}
	for _, pair := range allowed {
		if !pair[0].CanTransitionTo(pair[1]) {
			t.Errorf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}

	rejected := [][2]OrderStatus{
		{OrderStatusPending, OrderStatusAccepted},
		{OrderStatusPending, OrderStatusDone},
		{OrderStatusAccepted, OrderStatusPending},
		{OrderStatusAccepted, OrderStatusCancelled},
		{OrderStatusDone, OrderStatusInProgress},
		{OrderStatusDone, OrderStatusDone},
		{OrderStatusCancelled, OrderStatusPending},
	}
	for _, pair := range rejected {
		if pair[0].CanTransitionTo(pair[1]) {
			t.Errorf("expected %s -> %s to be rejected", pair[0], pair[1])
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	cases := map[string]OrderStatus{
		"pending":     OrderStatusPending,
		"INPROGRESS":  OrderStatusInProgress,
		" Done ":      OrderStatusDone,
		"3":           OrderStatusDone,
		"4":           OrderStatusCancelled,
		"1":           OrderStatusAccepted,
		"inprogress ": OrderStatusInProgress,
	}
	for raw, want := range cases {
		got, ok := ParseOrderStatus(raw)
		if !ok || got != want {
			t.Errorf("ParseOrderStatus(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}
	for _, raw := range []string{"", "9", "finished"} {
		if _, ok := ParseOrderStatus(raw); ok {
			t.Errorf("expected %q to be rejected", raw)
		}
	}
}

func TestOrderHelpers(t *testing.T) {
	vid := int64(5)
	updated := time.Unix(100, 0)
	completed := time.Unix(50, 0)

	o := Order{Status: OrderStatusPending, StatusUpdatedAt: updated}
	if !o.Claimable() || o.AssignedTo(5) {
		t.Fatal("fresh order should be claimable and unassigned")
	}
	if !o.CompletionTime().Equal(updated) {
		t.Fatal("completion time falls back to status update time")
	}

	o.VolunteerID = &vid
	o.Status = OrderStatusDone
	o.CompletedAt = &completed
	if o.Claimable() || !o.AssignedTo(5) || o.AssignedTo(6) {
		t.Fatal("unexpected assignment helpers result")
	}
	if !o.CompletionTime().Equal(completed) {
		t.Fatal("completion time prefers completion stamp")
	}

	report := CleanupReport{RequesterID: 1, Removed: []int64{3, 4}}
	if report.Count() != 2 {
		t.Fatalf("expected count 2, got %d", report.Count())
	}
}

func TestItemReference(t *testing.T) {
	if NoItem().IsSet() || NoItem().ProductID() != nil || NoItem().ServiceID() != nil {
		t.Fatal("empty reference must not name anything")
	}

	p := ProductItem(7)
	if !p.IsSet() || p.ProductID() == nil || *p.ProductID() != 7 || p.ServiceID() != nil {
		t.Fatalf("unexpected product reference %+v", p)
	}

	s := ServiceItem(9)
	if s.ServiceID() == nil || *s.ServiceID() != 9 || s.ProductID() != nil {
		t.Fatalf("unexpected service reference %+v", s)
	}

	pid, sid := int64(1), int64(2)
	if got := ItemFromColumns(&pid, nil); got != ProductItem(1) {
		t.Fatalf("unexpected %+v", got)
	}
	if got := ItemFromColumns(nil, &sid); got != ServiceItem(2) {
		t.Fatalf("unexpected %+v", got)
	}
	if got := ItemFromColumns(nil, nil); got.IsSet() {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestVolunteerUpdateApply(t *testing.T) {
	v := Volunteer{
		FirstName:           "Mona",
		LastName:            "Adel",
		Gender:              GenderFemale,
		Age:                 30,
		MaxActiveOrders:     3,
		CurrentActiveOrders: 2,
		Nursing:             true,
	}
	off := false
	on := true
	VolunteerUpdate{
		LastName:        "Samir",
		Address:         "  ",
		Nursing:         &off,
		PhysicalTherapy: &on,
		MaxActiveOrders: 5,
	}.Apply(&v)

	if v.FirstName != "Mona" || v.LastName != "Samir" {
		t.Fatalf("unexpected names %q %q", v.FirstName, v.LastName)
	}
	if v.Address != "" {
		t.Fatalf("blank update must not overwrite, got %q", v.Address)
	}
	if v.Nursing || !v.PhysicalTherapy {
		t.Fatal("specialization flags not applied")
	}
	if v.MaxActiveOrders != 5 || v.CurrentActiveOrders != 2 || v.Age != 30 {
		t.Fatalf("unexpected counters %+v", v)
	}
	if v.Name() != "Mona Samir" {
		t.Fatalf("unexpected name %q", v.Name())
	}
	if !v.HasCapacity() {
		t.Fatal("2 of 5 leaves capacity")
	}
}

func TestNormalizeGender(t *testing.T) {
	if g, ok := NormalizeGender(" Female "); !ok || g != GenderFemale {
		t.Fatalf("unexpected %q %v", g, ok)
	}
	if _, ok := NormalizeGender("other"); ok {
		t.Fatal("unknown gender must be rejected")
	}
}

func TestBalanceCovers(t *testing.T) {
	b := Balance{Amount: decimal.RequireFromString("10.50")}
	if !b.Covers(decimal.RequireFromString("10.5")) {
		t.Fatal("equal amount is covered")
	}
	if b.Covers(decimal.RequireFromString("10.51")) {
		t.Fatal("larger amount is not covered")
	}
	if !b.Covers(decimal.NewFromInt(-1)) {
		t.Fatal("negative query is trivially covered")
	}
}

func TestUserDisplayName(t *testing.T) {
	if got := (User{FirstName: "Ali", LastName: "Hassan"}).DisplayName(); got != "Ali Hassan" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := (User{FirstName: "Ali"}).DisplayName(); got != "Ali" {
		t.Fatalf("unexpected display name %q", got)
	}
}
