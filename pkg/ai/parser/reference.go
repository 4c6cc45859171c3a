package parser

import (
	"strings"

	"ai-voiceshop-be/pkg/store"
)

type ordinalEntry struct {
	keywords []string
	index    int
}

// Checked in order so lower ordinals win when an utterance matches several.
var ordinalEntries = []ordinalEntry{
	{[]string{"第一个", "第1个", "1", "first"}, 0},
	{[]string{"第二个", "第2个", "2", "second"}, 1},
	{[]string{"第三个", "第3个", "3", "third"}, 2},
	{[]string{"第四个", "第4个", "4", "fourth"}, 3},
	{[]string{"第五个", "第5个", "5", "fifth"}, 4},
}

var demonstrativeKeywords = []string{"这个", "那个", "this", "that", "它", "it"}

// ResolveReference maps an ordinal or demonstrative reference in the
// utterance onto one of the products previously surfaced in the session.
// Returns nil when nothing can be resolved: no surfaced products, an
// out-of-range ordinal, or no reference keyword at all.
func ResolveReference(text string, selectedProducts []store.ProductSummary) map[string]interface{} {
	if len(selectedProducts) == 0 {
		return nil
	}

	lower := strings.ToLower(text)

	for _, entry := range ordinalEntries {
		if !containsAny(lower, entry.keywords) {
			continue
		}
		if entry.index >= len(selectedProducts) {
			return nil
		}
		return referencedProduct(selectedProducts[entry.index])
	}

	if containsAny(lower, demonstrativeKeywords) {
		return referencedProduct(selectedProducts[len(selectedProducts)-1])
	}

	return nil
}

func referencedProduct(p store.ProductSummary) map[string]interface{} {
	return map[string]interface{}{
		"product_id":         p.ID,
		"product_name":       p.Name,
		"reference_resolved": true,
	}
}
