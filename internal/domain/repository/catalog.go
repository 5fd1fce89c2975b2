package repository

import (
	"context"

	"github.com/polkiloo/sanda/internal/domain/model"
)

// CatalogRepository resolves product and service references. Read only.
type CatalogRepository interface {
	Lookup(ctx context.Context, ref model.ItemReference) (*model.CatalogItem, error)
}
