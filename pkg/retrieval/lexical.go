package retrieval

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"ai-voiceshop-be/internal/entity"
	"ai-voiceshop-be/internal/pkg/logger"
)

// ProductSource yields the catalog in its stable presentation order.
type ProductSource interface {
	List(ctx context.Context) ([]entity.Product, error)
}

// LexicalRetriever ranks products by keyword overlap. It needs no remote
// index: the whole catalog is read from the source on every search, which is
// fine at the catalog sizes this backend is meant for.
type LexicalRetriever struct {
	source ProductSource
	log    logger.ILogger
}

func NewLexicalRetriever(source ProductSource, log logger.ILogger) *LexicalRetriever {
	return &LexicalRetriever{source: source, log: log}
}

func (r *LexicalRetriever) Search(ctx context.Context, query string, topK int, filters map[string]interface{}, allowAll bool) ([]entity.Product, error) {
	if err := validateTopK(topK); err != nil {
		return nil, err
	}

	catalog, err := r.source.List(ctx)
	if err != nil {
		return nil, err
	}
	candidates, err := applyFilters(dedupeById(catalog), filters)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Price < candidates[j].Price
		})
	} else {
		candidates = rankByScore(candidates, query, allowAll)
	}

	limit := resultLimit(topK, len(candidates), allowAll)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	r.log.Debug("retrieval", "lexical search completed", map[string]interface{}{
		"query":   query,
		"results": len(candidates),
	})
	return candidates, nil
}

// rankByScore orders candidates by descending keyword score, ties keeping
// catalog order. Zero-score candidates are dropped unless the caller asked
// for the full set.
func rankByScore(candidates []entity.Product, query string, allowAll bool) []entity.Product {
	queryLower := strings.ToLower(query)
	tokens := tokenize(queryLower)

	type scored struct {
		product entity.Product
		score   int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, p := range candidates {
		s := lexicalScore(p, queryLower, tokens)
		if s == 0 && !allowAll {
			continue
		}
		ranked = append(ranked, scored{product: p, score: s})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]entity.Product, len(ranked))
	for i, s := range ranked {
		out[i] = s.product
	}
	return out
}

func lexicalScore(p entity.Product, queryLower string, tokens []string) int {
	haystack := strings.ToLower(strings.Join([]string{
		p.Name, p.Description, p.Category, p.Chain, p.Currency,
	}, " "))

	score := 0
	if strings.Contains(haystack, queryLower) {
		score += 3
	}
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			score++
		}
	}
	return score
}

// tokenize splits a query into alphanumeric runs and single CJK characters.
func tokenize(s string) []string {
	var tokens []string
	seen := map[string]struct{}{}
	var run strings.Builder

	flush := func() {
		if run.Len() == 0 {
			return
		}
		t := run.String()
		run.Reset()
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		tokens = append(tokens, t)
	}

	for _, r := range s {
		switch {
		case unicode.Is(unicode.Han, r):
			flush()
			t := string(r)
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				tokens = append(tokens, t)
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			run.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}
