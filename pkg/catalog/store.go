package catalog

import (
	"context"

	"ai-voiceshop-be/internal/entity"
)

// Store is the catalog-maintenance contract, satisfied by the JSON file
// store and the Postgres-backed store alike.
type Store interface {
	List(ctx context.Context) ([]entity.Product, error)
	Get(ctx context.Context, id string) (*entity.Product, error)
	Upsert(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
