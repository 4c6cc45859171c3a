package parser

import "strings"

var listAllKeywords = []string{
	"列出所有商品",
	"列出全部商品",
	"列出所有",
	"列出全部",
	"展示全部商品",
	"展示所有商品",
	"全部商品",
	"所有商品",
	"所有的商品",
	"把所有商品",
	"把全部商品",
	"全部列出",
	"全部列出来",
	"列出来所有",
	"列出来全部",
	"全都有哪些",
	"有哪些商品",
	"所有nft",
	"全部nft",
	"全部token",
	"所有token",
}

var discoveryKeywords = []string{
	"不知道买什么",
	"不知道买啥",
	"随便看看",
	"随便选",
	"有什么推荐",
	"推荐一下",
	"推荐点",
	"看下推荐",
	"看看推荐",
	"热门有什么",
	"有什么热门",
	"不知道选什么",
	"帮我选",
}

var discoveryMissingHints = []string{"商品", "名称", "类型", "关键词", "品类"}

// IsListAllRequest reports whether the utterance (or an already parsed
// intent) asks for the full catalog instead of a filtered search.
func IsListAllRequest(text string, intent *ParsedIntent) bool {
	lower := strings.ToLower(text)
	for _, kw := range listAllKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	if intent == nil {
		return false
	}
	if v, ok := intent.Entities["list_all_products"]; ok {
		if b, ok := v.(bool); ok && b {
			return true
		}
	}
	return false
}

// IsDiscoveryRequest reports whether the user is browsing without a target:
// either the text carries an "I don't know what to buy" phrasing, or a
// query/purchase intent extracted nothing and the missing-info prompts point
// at product naming. Callers use this to show generic recommendations
// instead of a clarification question.
func IsDiscoveryRequest(text string, intent *ParsedIntent) bool {
	lower := strings.ToLower(text)
	for _, kw := range discoveryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	if intent == nil {
		return false
	}
	if intent.Intent != IntentQuery && intent.Intent != IntentPurchase {
		return false
	}
	if len(intent.Entities) > 0 {
		return false
	}

	missingText := strings.Join(intent.MissingInfo, "")
	for _, hint := range discoveryMissingHints {
		if strings.Contains(missingText, hint) {
			return true
		}
	}
	return false
}
