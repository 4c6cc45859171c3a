package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/internal/entity"
	"ai-voiceshop-be/internal/pkg/logger"
)

func testProduct(id, name string, price float64) *entity.Product {
	return &entity.Product{
		Id:              id,
		Name:            name,
		Description:     "测试商品",
		Category:        "NFT",
		Price:           price,
		Currency:        "MATIC",
		Chain:           "Polygon",
		ContractAddress: "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
	}
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "catalog.json"), logger.Nop())
}

func TestFileStoreEmptyWhenMissing(t *testing.T) {
	store := newTestStore(t)

	products, err := store.List(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestFileStoreUpsertPreservesOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Upsert(ctx, testProduct("nft-001", "Cosmic Pass", 80)))
	assert.NoError(t, store.Upsert(ctx, testProduct("nft-002", "Pixel Sword", 30)))
	assert.NoError(t, store.Upsert(ctx, testProduct("nft-003", "Dragon Egg", 40)))

	// Replacing an entry keeps its slot.
	assert.NoError(t, store.Upsert(ctx, testProduct("nft-002", "Pixel Sword v2", 35)))

	products, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, "nft-001", products[0].Id)
	assert.Equal(t, "Pixel Sword v2", products[1].Name)
	assert.Equal(t, "nft-003", products[2].Id)
}

func TestFileStoreRejectsInvalidProduct(t *testing.T) {
	store := newTestStore(t)

	bad := testProduct("nft-001", "Cosmic Pass", 80)
	bad.ContractAddress = "0x123"
	err := store.Upsert(context.Background(), bad)
	assert.Error(t, err)
	assert.True(t, apperr.IsInvalidInput(err))
}

func TestFileStoreGetAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Upsert(ctx, testProduct("nft-001", "Cosmic Pass", 80)))

	got, err := store.Get(ctx, "nft-001")
	assert.NoError(t, err)
	assert.Equal(t, "Cosmic Pass", got.Name)

	_, err = store.Get(ctx, "nft-404")
	assert.True(t, apperr.IsNotFound(err))

	assert.NoError(t, store.Delete(ctx, "nft-001"))
	assert.True(t, apperr.IsNotFound(store.Delete(ctx, "nft-001")))

	products, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, products)
}
