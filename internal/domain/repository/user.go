package repository

import (
	"context"

	"github.com/polkiloo/sanda/internal/domain/model"
)

// UserRepository resolves requesters registered elsewhere.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
