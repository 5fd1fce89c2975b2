package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/sanda/internal/domain/errors"
	"github.com/polkiloo/sanda/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	query := `SELECT id, first_name, last_name, COALESCE(email, ''), created_at FROM users WHERE id=$1`
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

type catalogRepository struct {
	storage *Storage
}

func (r *catalogRepository) Lookup(ctx context.Context, ref model.ItemReference) (*model.CatalogItem, error) {
	var query string
	switch ref.Kind {
	case model.ItemKindProduct:
		query = `SELECT name, COALESCE(image, ''), category, COALESCE(price, 0) FROM products WHERE id=$1`
	case model.ItemKindService:
		query = `SELECT name, COALESCE(image, ''), category, price FROM service_items WHERE id=$1`
	default:
		return nil, domainErrors.ErrNotFound
	}

	item := model.CatalogItem{Ref: ref}
	if err := r.storage.pool.QueryRow(ctx, query, ref.ID).Scan(&item.Name, &item.Image, &item.Category, &item.Price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
