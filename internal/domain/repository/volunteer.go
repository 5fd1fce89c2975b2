package repository

import (
	"context"

	"github.com/polkiloo/sanda/internal/domain/model"
)

// VolunteerRepository describes persistence operations for volunteers.
type VolunteerRepository interface {
	Create(ctx context.Context, v *model.Volunteer) (*model.Volunteer, error)
	GetByID(ctx context.Context, id int64) (*model.Volunteer, error)
	List(ctx context.Context) ([]model.Volunteer, error)
	// Update stores profile fields only; counters and balance are owned by other operations.
	Update(ctx context.Context, v *model.Volunteer) (*model.Volunteer, error)
	// Delete releases the volunteer's active orders back to Pending, then removes it.
	Delete(ctx context.Context, id int64) error
}
