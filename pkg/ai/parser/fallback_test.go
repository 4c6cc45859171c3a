package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackParseBranches(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		intent     IntentType
		confidence float64
	}{
		{"list all", "列出所有商品", IntentQuery, 0.75},
		{"purchase phrasing", "我想要买一个门票", IntentQuery, 0.6},
		{"search phrasing", "搜索一下游戏道具", IntentQuery, 0.55},
		{"no keyword", "你好", IntentHelp, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fallbackParse(tt.text)
			assert.Equal(t, tt.intent, result.Intent)
			assert.Equal(t, tt.confidence, result.Confidence)
			assert.Equal(t, SourceFallback, result.Source)
		})
	}
}

func TestFallbackParseProductTypeHints(t *testing.T) {
	result := fallbackParse("帮我找一个NFT")
	assert.Equal(t, "NFT", result.Entities["product_type"])
	assert.Empty(t, result.MissingInfo)

	result = fallbackParse("有没有便宜的Token")
	assert.Equal(t, "Token", result.Entities["product_type"])
}

func TestFallbackParseMissingInfo(t *testing.T) {
	result := fallbackParse("帮我买一个")
	assert.Equal(t, IntentQuery, result.Intent)
	assert.Empty(t, result.Entities)
	assert.Equal(t, []string{"商品名称或类型"}, result.MissingInfo)
}
