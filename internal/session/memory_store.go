package session

import (
	"context"
	"encoding/json"
	"time"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/internal/pkg/logger"
	"ai-voiceshop-be/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in a go-cache instance. It stores the same JSON
// documents the redis backend would, so serialization behavior (and the
// corrupt-record purge path) is identical across backends.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
	log   logger.ILogger
}

var _ Store = &MemoryStore{}

func NewMemoryStore(ttlSeconds int, log logger.ILogger) *MemoryStore {
	if ttlSeconds <= 0 {
		ttlSeconds = 600
	}
	ttl := time.Duration(ttlSeconds) * time.Second
	// Expired entries are purged every minute; reads also check ExpiresAt so
	// the purge interval never leaks a lapsed session.
	return &MemoryStore{
		cache: cache.New(ttl, time.Minute),
		ttl:   ttl,
		log:   log,
	}
}

func (m *MemoryStore) Create(ctx context.Context, userID string) (*store.UserSession, error) {
	now := time.Now().UTC()
	sess := &store.UserSession{
		SessionID:           uuid.New().String(),
		UserID:              userID,
		ConversationHistory: []store.Message{},
		SelectedProducts:    []store.ProductSummary{},
		CurrentState:        store.StateIdle,
		CreatedAt:           now,
		ExpiresAt:           now.Add(m.ttl),
	}

	if err := m.persist(sess, m.ttl); err != nil {
		return nil, err
	}
	return sess, nil
}

func (m *MemoryStore) Get(ctx context.Context, sessionID string) (*store.UserSession, error) {
	raw, found := m.cache.Get(sessionKey(sessionID))
	if !found {
		return nil, nil
	}

	data, ok := raw.([]byte)
	if !ok {
		m.cache.Delete(sessionKey(sessionID))
		return nil, nil
	}

	var sess store.UserSession
	if err := json.Unmarshal(data, &sess); err != nil {
		m.log.Warn("session", "purging corrupt session record", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		m.cache.Delete(sessionKey(sessionID))
		return nil, nil
	}

	if sess.IsExpired() {
		m.cache.Delete(sessionKey(sessionID))
		return nil, nil
	}

	return &sess, nil
}

func (m *MemoryStore) UpdateField(ctx context.Context, sessionID, field string, value interface{}) error {
	sess, err := m.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		return notFound(sessionID)
	}

	if err := applyField(sess, field, value); err != nil {
		return err
	}

	expiry := time.Until(sess.ExpiresAt)
	if expiry <= 0 {
		expiry = m.ttl
		sess.ExpiresAt = time.Now().UTC().Add(m.ttl)
	}

	return m.persist(sess, expiry)
}

func (m *MemoryStore) AppendMessage(ctx context.Context, sessionID, role, content string, metadata map[string]interface{}) error {
	return appendMessage(ctx, m, sessionID, role, content, metadata)
}

func (m *MemoryStore) AppendSelectedProduct(ctx context.Context, sessionID string, product store.ProductSummary) error {
	return appendSelectedProduct(ctx, m, sessionID, product)
}

func (m *MemoryStore) ClearSelectedProducts(ctx context.Context, sessionID string) error {
	return m.UpdateField(ctx, sessionID, FieldSelectedProducts, []store.ProductSummary{})
}

func (m *MemoryStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	_, existed := m.cache.Get(sessionKey(sessionID))
	m.cache.Delete(sessionKey(sessionID))
	return existed, nil
}

func (m *MemoryStore) Extend(ctx context.Context, sessionID string, seconds int) (bool, error) {
	if seconds <= 0 {
		seconds = int(m.ttl.Seconds())
	}
	sess, err := m.Get(ctx, sessionID)
	if err != nil || sess == nil {
		return false, err
	}

	ttl := time.Duration(seconds) * time.Second
	sess.ExpiresAt = time.Now().UTC().Add(ttl)
	if err := m.persist(sess, ttl); err != nil {
		return false, err
	}
	return true, nil
}

// Inject stores a raw document under a session key. Test hook for the
// corrupt-record path.
func (m *MemoryStore) Inject(sessionID string, data []byte, expiry time.Duration) {
	m.cache.Set(sessionKey(sessionID), data, expiry)
}

func (m *MemoryStore) persist(sess *store.UserSession, expiry time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return apperr.Wrap(apperr.KindDataCorruption, "session marshal failed", err)
	}
	m.cache.Set(sessionKey(sess.SessionID), data, expiry)
	return nil
}
