package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsListAllRequestByKeyword(t *testing.T) {
	assert.True(t, IsListAllRequest("列出所有商品", nil))
	assert.True(t, IsListAllRequest("把全部商品都给我看看", nil))
	assert.True(t, IsListAllRequest("所有NFT", nil))
	assert.False(t, IsListAllRequest("有没有音乐会门票", nil))
}

func TestIsListAllRequestByEntity(t *testing.T) {
	intent := &ParsedIntent{
		Intent:   IntentQuery,
		Entities: map[string]interface{}{"list_all_products": true},
	}
	assert.True(t, IsListAllRequest("随便说点什么", intent))

	intent.Entities["list_all_products"] = false
	assert.False(t, IsListAllRequest("随便说点什么", intent))
}

func TestIsDiscoveryRequestByKeyword(t *testing.T) {
	assert.True(t, IsDiscoveryRequest("我不知道买什么", nil))
	assert.True(t, IsDiscoveryRequest("有什么推荐吗", nil))
	assert.False(t, IsDiscoveryRequest("买第一个", nil))
}

func TestIsDiscoveryRequestByMissingInfo(t *testing.T) {
	intent := &ParsedIntent{
		Intent:      IntentQuery,
		Entities:    map[string]interface{}{},
		MissingInfo: []string{"商品名称或类型"},
	}
	assert.True(t, IsDiscoveryRequest("嗯", intent))

	// Extracted entities mean the user already named a target.
	withEntities := &ParsedIntent{
		Intent:      IntentQuery,
		Entities:    map[string]interface{}{"category": "游戏道具"},
		MissingInfo: []string{"商品名称或类型"},
	}
	assert.False(t, IsDiscoveryRequest("嗯", withEntities))

	confirm := &ParsedIntent{
		Intent:      IntentConfirm,
		Entities:    map[string]interface{}{},
		MissingInfo: []string{"商品名称或类型"},
	}
	assert.False(t, IsDiscoveryRequest("嗯", confirm))
}
