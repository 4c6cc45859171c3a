package parser

import "strings"

var purchaseKeywords = []string{"买", "购买", "想要", "下单"}

var searchKeywords = []string{"找", "搜索", "看看", "有没有", "find", "search"}

// fallbackParse classifies an utterance with keyword heuristics when the
// model path is unavailable. Branches run in priority order: list-all,
// purchase phrasing, search phrasing, then HELP as the floor.
func fallbackParse(text string) *ParsedIntent {
	lower := strings.ToLower(text)
	entities := map[string]interface{}{}
	intent := IntentHelp
	confidence := 0.4

	switch {
	case IsListAllRequest(text, nil):
		intent = IntentQuery
		confidence = 0.75
		entities["list_all_products"] = true
	case containsAny(lower, purchaseKeywords):
		intent = IntentQuery
		confidence = 0.6
	case containsAny(lower, searchKeywords):
		intent = IntentQuery
		confidence = 0.55
	}

	if strings.Contains(lower, "nft") {
		entities["product_type"] = "NFT"
	}
	if strings.Contains(lower, "token") {
		entities["product_type"] = "Token"
	}

	missingInfo := []string{}
	if intent == IntentQuery && len(entities) == 0 {
		missingInfo = []string{"商品名称或类型"}
	}

	return &ParsedIntent{
		Intent:      intent,
		Entities:    entities,
		Confidence:  confidence,
		MissingInfo: missingInfo,
		Source:      SourceFallback,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
