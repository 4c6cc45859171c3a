package retrieval

import (
	"context"
	"fmt"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/internal/entity"
	"ai-voiceshop-be/internal/pkg/logger"
	"ai-voiceshop-be/pkg/embedding"
)

// SimilaritySearcher is the vector-index half of the remote strategy,
// implemented by the pgvector-backed product repository.
type SimilaritySearcher interface {
	SearchSimilar(ctx context.Context, vector []float32, limit int) ([]entity.Product, error)
	Count(ctx context.Context) (int64, error)
}

// VectorRetriever embeds the query and ranks candidates by cosine
// similarity against their stored embeddings. dim is the index's column
// dimension; a provider returning a different length is a deployment
// misconfiguration and fails the search before it reaches the index.
type VectorRetriever struct {
	embedder embedding.EmbeddingProvider
	searcher SimilaritySearcher
	dim      int
	log      logger.ILogger
}

func NewVectorRetriever(embedder embedding.EmbeddingProvider, searcher SimilaritySearcher, dim int, log logger.ILogger) *VectorRetriever {
	return &VectorRetriever{embedder: embedder, searcher: searcher, dim: dim, log: log}
}

func (r *VectorRetriever) Search(ctx context.Context, query string, topK int, filters map[string]interface{}, allowAll bool) ([]entity.Product, error) {
	if err := validateTopK(topK); err != nil {
		return nil, err
	}

	vector, err := r.embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamUnavailable, "embedding query failed", err)
	}
	if r.dim > 0 && len(vector) != r.dim {
		return nil, apperr.New(apperr.KindUnknown,
			fmt.Sprintf("embedding dimension mismatch: provider returned %d, index expects %d", len(vector), r.dim))
	}

	// Filters drop candidates after the index returns them, so fetch a
	// wider window than the caller asked for when filters are present.
	fetch := topK
	if allowAll {
		total, err := r.searcher.Count(ctx)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindUpstreamUnavailable, "counting products failed", err)
		}
		if int(total) > fetch {
			fetch = int(total)
		}
	} else if len(filters) > 0 {
		fetch = topK * 4
		if fetch < 20 {
			fetch = 20
		}
	}

	candidates, err := r.searcher.SearchSimilar(ctx, vector, fetch)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamUnavailable, "vector search failed", err)
	}

	candidates, err = applyFilters(dedupeById(candidates), filters)
	if err != nil {
		return nil, err
	}

	limit := resultLimit(topK, len(candidates), allowAll)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	r.log.Debug("retrieval", "vector search completed", map[string]interface{}{
		"query":   query,
		"fetched": fetch,
		"results": len(candidates),
	})
	return candidates, nil
}
