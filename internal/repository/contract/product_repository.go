package contract

import (
	"context"

	"ai-voiceshop-be/internal/entity"
	"ai-voiceshop-be/internal/repository/specification"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	CreateBulk(ctx context.Context, products []*entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Advanced
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.Product, error)
}
