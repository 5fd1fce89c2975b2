package model

import (
	"strings"
	"time"
)

// User represents a requester registered outside of this service.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}

// DisplayName is the name snapshotted into new orders.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
