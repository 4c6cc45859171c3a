package retrieval

import (
	"context"
	"fmt"
	"strings"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/internal/entity"
)

// HardResultCap bounds any search that does not ask for the full catalog.
const HardResultCap = 5

// Retriever ranks catalog products against a free-text query. The two
// implementations (vector similarity, local lexical scoring) share this
// contract so the backend swaps by configuration.
type Retriever interface {
	Search(ctx context.Context, query string, topK int, filters map[string]interface{}, allowAll bool) ([]entity.Product, error)
}

func validateTopK(topK int) error {
	if topK <= 0 {
		return apperr.New(apperr.KindInvalidInput, "top_k must be a positive integer")
	}
	return nil
}

// resultLimit applies the hard ceiling unless the caller asked for everything.
func resultLimit(topK, matches int, allowAll bool) int {
	if allowAll {
		if topK > matches {
			return topK
		}
		return matches
	}
	if topK > HardResultCap {
		return HardResultCap
	}
	return topK
}

// applyFilters drops candidates failing any clause. A clause is either a
// numeric range map on price ({"$gte": x} / {"$lte": x}) or a
// case-insensitive string-equality test on any other product attribute.
func applyFilters(products []entity.Product, filters map[string]interface{}) ([]entity.Product, error) {
	if len(filters) == 0 {
		return products, nil
	}

	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		ok, err := matchesFilters(p, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func matchesFilters(p entity.Product, filters map[string]interface{}) (bool, error) {
	for key, constraint := range filters {
		if rangeMap, ok := constraint.(map[string]interface{}); ok {
			matched, err := matchesRange(p, key, rangeMap)
			if err != nil {
				return false, err
			}
			if !matched {
				return false, nil
			}
			continue
		}

		want, ok := constraint.(string)
		if !ok {
			return false, apperr.New(apperr.KindInvalidInput,
				fmt.Sprintf("filter %q must be a string or a range map", key))
		}
		if !strings.EqualFold(attributeValue(p, key), want) {
			return false, nil
		}
	}
	return true, nil
}

func matchesRange(p entity.Product, key string, constraint map[string]interface{}) (bool, error) {
	if key != "price" {
		return false, apperr.New(apperr.KindInvalidInput,
			fmt.Sprintf("range filters are only supported on price, got %q", key))
	}
	for op, raw := range constraint {
		bound, err := toFloat(raw)
		if err != nil {
			return false, apperr.New(apperr.KindInvalidInput,
				fmt.Sprintf("filter price.%s must be numeric", op))
		}
		switch op {
		case "$gte":
			if p.Price < bound {
				return false, nil
			}
		case "$lte":
			if p.Price > bound {
				return false, nil
			}
		default:
			return false, apperr.New(apperr.KindInvalidInput,
				fmt.Sprintf("unsupported range operator %q", op))
		}
	}
	return true, nil
}

func attributeValue(p entity.Product, key string) string {
	switch key {
	case "id":
		return p.Id
	case "name":
		return p.Name
	case "description":
		return p.Description
	case "category":
		return p.Category
	case "currency":
		return p.Currency
	case "chain":
		return p.Chain
	case "contract_address":
		return p.ContractAddress
	case "token_id":
		return p.TokenId
	default:
		if p.Metadata != nil {
			if v, ok := p.Metadata[key]; ok {
				return fmt.Sprintf("%v", v)
			}
		}
		return ""
	}
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("not a number: %v", v)
}

// dedupeById keeps the first occurrence of each product id.
func dedupeById(products []entity.Product) []entity.Product {
	seen := make(map[string]struct{}, len(products))
	out := products[:0]
	for _, p := range products {
		if _, ok := seen[p.Id]; ok {
			continue
		}
		seen[p.Id] = struct{}{}
		out = append(out, p)
	}
	return out
}
