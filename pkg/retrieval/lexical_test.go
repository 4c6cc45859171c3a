package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-voiceshop-be/internal/entity"
	"ai-voiceshop-be/internal/pkg/logger"
)

type staticSource struct {
	products []entity.Product
}

func (s *staticSource) List(_ context.Context) ([]entity.Product, error) {
	return append([]entity.Product(nil), s.products...), nil
}

func testCatalog() []entity.Product {
	return []entity.Product{
		{Id: "nft-001", Name: "数字艺术藏品 Genesis", Description: "限量数字艺术", Category: "NFT", Price: 80, Currency: "MATIC", Chain: "Polygon", ContractAddress: "0x1111111111111111111111111111111111111111"},
		{Id: "nft-002", Name: "Concert Pass", Description: "元宇宙音乐派对门票", Category: "NFT", Price: 150, Currency: "MATIC", Chain: "Polygon", ContractAddress: "0x2222222222222222222222222222222222222222"},
		{Id: "nft-003", Name: "数字艺术海报", Description: "潮流艺术", Category: "nft", Price: 60, Currency: "ETH", Chain: "Ethereum", ContractAddress: "0x3333333333333333333333333333333333333333"},
		{Id: "tok-001", Name: "Game Token", Description: "游戏通用代币", Category: "Token", Price: 5, Currency: "MATIC", Chain: "Polygon", ContractAddress: "0x4444444444444444444444444444444444444444"},
		{Id: "nft-004", Name: "Dragon Egg", Description: "游戏道具", Category: "NFT", Price: 40, Currency: "MATIC", Chain: "Polygon", ContractAddress: "0x5555555555555555555555555555555555555555"},
		{Id: "nft-005", Name: "Aurora Pass", Description: "艺术展门票", Category: "NFT", Price: 95, Currency: "MATIC", Chain: "Polygon", ContractAddress: "0x6666666666666666666666666666666666666666"},
		{Id: "nft-006", Name: "Pixel Sword", Description: "像素风游戏道具", Category: "NFT", Price: 30, Currency: "MATIC", Chain: "Polygon", ContractAddress: "0x7777777777777777777777777777777777777777"},
	}
}

func newLexical(products []entity.Product) *LexicalRetriever {
	return NewLexicalRetriever(&staticSource{products: products}, logger.Nop())
}

func TestLexicalSearchFiltersAndRanks(t *testing.T) {
	r := newLexical(testCatalog())

	results, err := r.Search(context.Background(), "数字艺术", 5, map[string]interface{}{
		"price":    map[string]interface{}{"$lte": 100.0},
		"category": "NFT",
	}, false)
	assert.NoError(t, err)
	assert.LessOrEqual(t, len(results), 5)
	for _, p := range results {
		assert.LessOrEqual(t, p.Price, 100.0)
	}
	// Whole-query substring matches outrank token-only matches.
	assert.Equal(t, "nft-001", results[0].Id)
	assert.Equal(t, "nft-003", results[1].Id)
	// "Concert Pass" is over budget; "Game Token" is not category NFT.
	for _, p := range results {
		assert.NotEqual(t, "nft-002", p.Id)
		assert.NotEqual(t, "tok-001", p.Id)
	}
}

func TestLexicalSearchCapsAtFive(t *testing.T) {
	r := newLexical(testCatalog())

	results, err := r.Search(context.Background(), "", 10, nil, false)
	assert.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestLexicalSearchAllowAllLiftsCap(t *testing.T) {
	r := newLexical(testCatalog())

	results, err := r.Search(context.Background(), "", 10, nil, true)
	assert.NoError(t, err)
	assert.Len(t, results, 7)
}

func TestLexicalSearchEmptyQuerySortsByPrice(t *testing.T) {
	r := newLexical(testCatalog())

	results, err := r.Search(context.Background(), "  ", 3, nil, false)
	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, "tok-001", results[0].Id)
	assert.Equal(t, "nft-006", results[1].Id)
	assert.Equal(t, "nft-004", results[2].Id)
}

func TestLexicalSearchExcludesZeroScores(t *testing.T) {
	r := newLexical(testCatalog())

	results, err := r.Search(context.Background(), "不存在的词汇xyz", 5, nil, false)
	assert.NoError(t, err)
	assert.Empty(t, results)

	results, err = r.Search(context.Background(), "quantum", 10, nil, true)
	assert.NoError(t, err)
	assert.Len(t, results, 7)
}

func TestLexicalSearchTiesKeepCatalogOrder(t *testing.T) {
	r := newLexical(testCatalog())

	// Both game items score identically on the token "游戏".
	results, err := r.Search(context.Background(), "游戏", 5, nil, false)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(results), 2)
	assert.Equal(t, "tok-001", results[0].Id)
}

func TestLexicalSearchDeterministic(t *testing.T) {
	r := newLexical(testCatalog())

	first, err := r.Search(context.Background(), "艺术", 5, nil, false)
	assert.NoError(t, err)
	second, err := r.Search(context.Background(), "艺术", 5, nil, false)
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	seen := map[string]bool{}
	for _, p := range first {
		assert.False(t, seen[p.Id])
		seen[p.Id] = true
	}
}

func TestLexicalSearchRejectsBadInput(t *testing.T) {
	r := newLexical(testCatalog())

	_, err := r.Search(context.Background(), "艺术", 0, nil, false)
	assert.Error(t, err)

	_, err = r.Search(context.Background(), "艺术", 5, map[string]interface{}{
		"price": map[string]interface{}{"$between": 10.0},
	}, false)
	assert.Error(t, err)

	_, err = r.Search(context.Background(), "艺术", 5, map[string]interface{}{
		"category": 42,
	}, false)
	assert.Error(t, err)
}
