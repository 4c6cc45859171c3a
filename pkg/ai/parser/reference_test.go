package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-voiceshop-be/pkg/store"
)

func sampleProducts(n int) []store.ProductSummary {
	products := make([]store.ProductSummary, 0, n)
	names := []string{"Cosmic Pass", "Pixel Sword", "Aurora Ticket", "Dragon Egg", "Neon Avatar"}
	for i := 0; i < n; i++ {
		products = append(products, store.ProductSummary{
			ID:       "prod-" + names[i],
			Name:     names[i],
			Price:    float64(10 * (i + 1)),
			Currency: "MATIC",
			Chain:    "Polygon",
		})
	}
	return products
}

func TestResolveOrdinalReference(t *testing.T) {
	products := sampleProducts(3)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"chinese first", "买第一个", "Cosmic Pass"},
		{"chinese digit form", "我要第2个", "Pixel Sword"},
		{"bare digit", "就要 3 吧", "Aurora Ticket"},
		{"english ordinal", "I'll take the second one", "Pixel Sword"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := ResolveReference(tt.text, products)
			assert.NotNil(t, resolved)
			assert.Equal(t, tt.want, resolved["product_name"])
			assert.Equal(t, true, resolved["reference_resolved"])
		})
	}
}

func TestResolveDemonstrativeTakesLastProduct(t *testing.T) {
	products := sampleProducts(3)

	resolved := ResolveReference("就买这个吧", products)
	assert.NotNil(t, resolved)
	assert.Equal(t, "Aurora Ticket", resolved["product_name"])
	assert.Equal(t, "prod-Aurora Ticket", resolved["product_id"])
}

func TestResolveReferenceOutOfRange(t *testing.T) {
	products := sampleProducts(2)

	assert.Nil(t, ResolveReference("买第五个", products))
}

func TestResolveReferenceWithoutProducts(t *testing.T) {
	assert.Nil(t, ResolveReference("买第一个", nil))
	assert.Nil(t, ResolveReference("这个多少钱", []store.ProductSummary{}))
}

func TestResolveReferenceNoKeyword(t *testing.T) {
	assert.Nil(t, ResolveReference("有没有音乐会门票", sampleProducts(2)))
}
