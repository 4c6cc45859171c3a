package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/internal/entity"
	"ai-voiceshop-be/internal/pkg/logger"
)

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Generate(_ context.Context, _ string, _ string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

// fakeSearcher returns its products already ranked, as the index would.
type fakeSearcher struct {
	ranked    []entity.Product
	lastLimit int
}

func (f *fakeSearcher) SearchSimilar(_ context.Context, _ []float32, limit int) ([]entity.Product, error) {
	f.lastLimit = limit
	if limit > len(f.ranked) {
		limit = len(f.ranked)
	}
	return append([]entity.Product(nil), f.ranked[:limit]...), nil
}

func (f *fakeSearcher) Count(_ context.Context) (int64, error) {
	return int64(len(f.ranked)), nil
}

func TestVectorSearchReturnsRankedResults(t *testing.T) {
	searcher := &fakeSearcher{ranked: testCatalog()}
	r := NewVectorRetriever(&fakeEmbedder{}, searcher, 3, logger.Nop())

	results, err := r.Search(context.Background(), "数字艺术", 3, nil, false)
	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, "nft-001", results[0].Id)
	assert.Equal(t, 3, searcher.lastLimit)
}

func TestVectorSearchCapsAtFive(t *testing.T) {
	searcher := &fakeSearcher{ranked: testCatalog()}
	r := NewVectorRetriever(&fakeEmbedder{}, searcher, 3, logger.Nop())

	results, err := r.Search(context.Background(), "nft", 10, nil, false)
	assert.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestVectorSearchWidensWindowForFilters(t *testing.T) {
	searcher := &fakeSearcher{ranked: testCatalog()}
	r := NewVectorRetriever(&fakeEmbedder{}, searcher, 3, logger.Nop())

	results, err := r.Search(context.Background(), "数字艺术", 5, map[string]interface{}{
		"price":    map[string]interface{}{"$lte": 100.0},
		"category": "NFT",
	}, false)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, searcher.lastLimit, 20)
	for _, p := range results {
		assert.LessOrEqual(t, p.Price, 100.0)
		assert.NotEqual(t, "tok-001", p.Id)
	}
}

func TestVectorSearchAllowAllFetchesWholeCatalog(t *testing.T) {
	searcher := &fakeSearcher{ranked: testCatalog()}
	r := NewVectorRetriever(&fakeEmbedder{}, searcher, 3, logger.Nop())

	results, err := r.Search(context.Background(), "nft", 1, nil, true)
	assert.NoError(t, err)
	assert.Len(t, results, 7)
}

func TestVectorSearchEmbeddingFailure(t *testing.T) {
	r := NewVectorRetriever(&fakeEmbedder{err: errors.New("model offline")}, &fakeSearcher{}, 3, logger.Nop())

	_, err := r.Search(context.Background(), "nft", 3, nil, false)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindUpstreamUnavailable, apperr.KindOf(err))
}

func TestVectorSearchRejectsDimensionMismatch(t *testing.T) {
	searcher := &fakeSearcher{ranked: testCatalog()}
	// fakeEmbedder produces 3-dimensional vectors; the index expects 768.
	r := NewVectorRetriever(&fakeEmbedder{}, searcher, 768, logger.Nop())

	_, err := r.Search(context.Background(), "数字艺术", 3, nil, false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
	assert.Zero(t, searcher.lastLimit)
}
