package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/internal/pkg/logger"
	"ai-voiceshop-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore(600, logger.Nop())
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, created.SessionID)
	assert.Equal(t, "alice", created.UserID)

	got, err := s.Get(ctx, created.SessionID)
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.Equal(t, store.StateIdle, got.CurrentState)
		assert.Empty(t, got.ConversationHistory)
		assert.Empty(t, got.SelectedProducts)
		assert.Equal(t, created.ExpiresAt.Unix(), created.CreatedAt.Add(600*time.Second).Unix())
	}
}

func TestGetAbsent(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Get(context.Background(), "no-such-session")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "bob")
	assert.NoError(t, err)

	err = s.AppendMessage(ctx, created.SessionID, store.RoleUser, "买第一个", map[string]interface{}{"confidence": 0.9})
	assert.NoError(t, err)
	err = s.AppendSelectedProduct(ctx, created.SessionID, store.ProductSummary{
		ID: "nft-001", Name: "CryptoPunk #1234", Price: 0.5, Currency: "ETH", Chain: "polygon",
	})
	assert.NoError(t, err)

	got, err := s.Get(ctx, created.SessionID)
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.Len(t, got.ConversationHistory, 1)
		assert.Equal(t, "买第一个", got.ConversationHistory[0].Content)
		assert.Len(t, got.SelectedProducts, 1)
		assert.Equal(t, "nft-001", got.SelectedProducts[0].ID)
		// Identity survives serialization; only TTL bookkeeping may differ.
		assert.Equal(t, created.SessionID, got.SessionID)
		assert.Equal(t, created.CreatedAt.Unix(), got.CreatedAt.Unix())
	}
}

func TestUpdateFieldOnDeletedSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "carol")
	assert.NoError(t, err)

	existed, err := s.Delete(ctx, created.SessionID)
	assert.NoError(t, err)
	assert.True(t, existed)

	err = s.UpdateField(ctx, created.SessionID, FieldCurrentState, store.StateBrowsing)
	assert.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateUnknownField(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "dave")
	assert.NoError(t, err)

	err = s.UpdateField(ctx, created.SessionID, "favorite_color", "green")
	assert.Error(t, err)
	assert.True(t, apperr.IsInvalidInput(err))
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "erin")
	assert.NoError(t, err)

	existed, err := s.Delete(ctx, created.SessionID)
	assert.NoError(t, err)
	assert.True(t, existed)

	existed, err = s.Delete(ctx, created.SessionID)
	assert.NoError(t, err)
	assert.False(t, existed)
}

func TestLapsedSessionIsAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "frank")
	assert.NoError(t, err)

	// Rewrite the document with an ExpiresAt in the past while the cache
	// entry itself is still live: the logical TTL wins.
	created.ExpiresAt = time.Now().UTC().Add(-time.Second)
	data, err := json.Marshal(created)
	assert.NoError(t, err)
	s.Inject(created.SessionID, data, time.Minute)

	got, err := s.Get(ctx, created.SessionID)
	assert.NoError(t, err)
	assert.Nil(t, got)

	err = s.AppendMessage(ctx, created.SessionID, store.RoleUser, "hello", nil)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCorruptRecordIsPurged(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Inject("broken", []byte("{not json"), time.Minute)

	got, err := s.Get(ctx, "broken")
	assert.NoError(t, err)
	assert.Nil(t, got)

	// The record is gone after the failed read.
	_, found := s.cache.Get(sessionKey("broken"))
	assert.False(t, found)
}

func TestExtend(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "grace")
	assert.NoError(t, err)

	ok, err := s.Extend(ctx, created.SessionID, 1200)
	assert.NoError(t, err)
	assert.True(t, ok)

	got, err := s.Get(ctx, created.SessionID)
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.True(t, got.ExpiresAt.After(time.Now().UTC().Add(1100*time.Second)))
	}

	ok, err = s.Extend(ctx, "missing", 0)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestClearSelectedProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "heidi")
	assert.NoError(t, err)

	assert.NoError(t, s.AppendSelectedProduct(ctx, created.SessionID, store.ProductSummary{ID: "nft-001"}))
	assert.NoError(t, s.AppendSelectedProduct(ctx, created.SessionID, store.ProductSummary{ID: "nft-002"}))
	assert.NoError(t, s.ClearSelectedProducts(ctx, created.SessionID))

	got, err := s.Get(ctx, created.SessionID)
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.Empty(t, got.SelectedProducts)
	}
}
