package catalog

import (
	"context"
	"fmt"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/internal/entity"
	"ai-voiceshop-be/internal/repository/contract"
	"ai-voiceshop-be/internal/repository/specification"
)

// DBStore keeps the catalog in Postgres. It doubles as the similarity
// searcher for the vector retrieval strategy, since the embeddings live in
// the same table.
type DBStore struct {
	repo contract.ProductRepository
}

func NewDBStore(repo contract.ProductRepository) *DBStore {
	return &DBStore{repo: repo}
}

func (s *DBStore) List(ctx context.Context) ([]entity.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, len(products))
	for i, p := range products {
		out[i] = *p
	}
	return out, nil
}

func (s *DBStore) Get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.repo.FindOne(ctx, specification.ByProductID{ID: id})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("product %s not found", id))
	}
	return product, nil
}

// Upsert keeps an existing row's embedding; re-embedding is the consumer
// pipeline's job.
func (s *DBStore) Upsert(ctx context.Context, product *entity.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	existing, err := s.repo.FindOne(ctx, specification.ByProductID{ID: product.Id})
	if err != nil {
		return err
	}
	if existing == nil {
		return s.repo.Create(ctx, product)
	}

	if product.Embedding == nil {
		product.Embedding = existing.Embedding
	}
	product.CreatedAt = existing.CreatedAt
	return s.repo.Update(ctx, product)
}

func (s *DBStore) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindOne(ctx, specification.ByProductID{ID: id})
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.New(apperr.KindNotFound, fmt.Sprintf("product %s not found", id))
	}
	return s.repo.Delete(ctx, id)
}

// SearchSimilar satisfies the vector retriever's searcher contract.
func (s *DBStore) SearchSimilar(ctx context.Context, vector []float32, limit int) ([]entity.Product, error) {
	products, err := s.repo.SearchSimilar(ctx, vector, limit)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, len(products))
	for i, p := range products {
		out[i] = *p
	}
	return out, nil
}

func (s *DBStore) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
