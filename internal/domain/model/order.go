package model

import (
	"strconv"
	"strings"
	"time"
)

// OrderStatus describes the assistance request lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusAccepted   OrderStatus = "Accepted"
	OrderStatusInProgress OrderStatus = "InProgress"
	OrderStatusDone       OrderStatus = "Done"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// DefaultLocation is stored when the requester gives no location.
const DefaultLocation = "Unknown Location"

var statusRanks = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusAccepted:   1,
	OrderStatusInProgress: 2,
	OrderStatusDone:       3,
	OrderStatusCancelled:  4,
}

// transitions lists the moves allowed through a plain status change.
// Pending -> Accepted is only reachable by a volunteer claiming the order.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusCancelled},
	OrderStatusAccepted:   {OrderStatusInProgress},
	OrderStatusInProgress: {OrderStatusDone},
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusRanks[s]
	return ok
}

// Rank returns the position of s in the lifecycle, or -1 for unknown values.
func (s OrderStatus) Rank() int {
	if r, ok := statusRanks[s]; ok {
		return r
	}
	return -1
}

// Active reports whether an order in this status counts against volunteer capacity.
func (s OrderStatus) Active() bool {
	return s == OrderStatusAccepted || s == OrderStatusInProgress
}

// Assigned reports whether an order in this status must carry a volunteer.
func (s OrderStatus) Assigned() bool {
	return s.Active() || s == OrderStatusDone
}

// CanTransitionTo reports whether a direct status change from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseOrderStatus accepts a status name (any case) or its numeric rank.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		for status, rank := range statusRanks {
			if rank == n {
				return status, true
			}
		}
		return "", false
	}
	for status := range statusRanks {
		if strings.EqualFold(string(status), raw) {
			return status, true
		}
	}
	return "", false
}

// Order is a single service or product request tracked through its lifecycle.
type Order struct {
	ID               int64
	RequesterID      int64
	RequesterName    string
	Name             string
	Comment          string
	PhoneNumber      string
	Location         string
	Category         string
	Item             ItemReference
	ItemImage        string
	GenderPreference string
	Status           OrderStatus
	CreatedAt        time.Time
	StatusUpdatedAt  time.Time
	InProgressAt     *time.Time
	CompletedAt      *time.Time
	VolunteerID      *int64
}

// AssignedTo reports whether the order is held by the given volunteer.
func (o Order) AssignedTo(volunteerID int64) bool {
	return o.VolunteerID != nil && *o.VolunteerID == volunteerID
}

// Claimable reports whether a volunteer may still accept the order.
func (o Order) Claimable() bool {
	return o.Status == OrderStatusPending && o.VolunteerID == nil
}

// CompletionTime is the instant cleanup orders by.
func (o Order) CompletionTime() time.Time {
	if o.CompletedAt != nil {
		return *o.CompletedAt
	}
	return o.StatusUpdatedAt
}

// CleanupReport lists the orders removed by a cleanup run, oldest completion first.
type CleanupReport struct {
	RequesterID int64
	Removed     []int64
}

// Count returns the number of removed orders.
func (r CleanupReport) Count() int {
	return len(r.Removed)
}
