package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/internal/pkg/logger"
	"ai-voiceshop-be/pkg/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore persists sessions as JSON documents under "session:"+id with a
// store-enforced TTL. Mutations re-arm the TTL with the remaining time, so
// idle dialogues expire on schedule no matter how chatty they were.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.ILogger
}

var _ Store = &RedisStore{}

func NewRedisStore(client *redis.Client, ttlSeconds int, log logger.ILogger) *RedisStore {
	if ttlSeconds <= 0 {
		ttlSeconds = 600
	}
	return &RedisStore{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
		log:    log,
	}
}

func (r *RedisStore) Create(ctx context.Context, userID string) (*store.UserSession, error) {
	now := time.Now().UTC()
	sess := &store.UserSession{
		SessionID:           uuid.New().String(),
		UserID:              userID,
		ConversationHistory: []store.Message{},
		SelectedProducts:    []store.ProductSummary{},
		CurrentState:        store.StateIdle,
		CreatedAt:           now,
		ExpiresAt:           now.Add(r.ttl),
	}

	if err := r.persist(ctx, sess, r.ttl); err != nil {
		return nil, err
	}
	return sess, nil
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*store.UserSession, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamUnavailable, "session store read failed", err)
	}

	var sess store.UserSession
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupt record: purge and report absence rather than a parse error.
		r.log.Warn("session", "purging corrupt session record", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		r.client.Del(ctx, sessionKey(sessionID))
		return nil, nil
	}

	if sess.IsExpired() {
		// Lapsed but not yet purged by redis. Treat as absent.
		r.client.Del(ctx, sessionKey(sessionID))
		return nil, nil
	}

	return &sess, nil
}

func (r *RedisStore) UpdateField(ctx context.Context, sessionID, field string, value interface{}) error {
	sess, err := r.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		return notFound(sessionID)
	}

	if err := applyField(sess, field, value); err != nil {
		return err
	}

	// Keep the remaining TTL; fall back to the full TTL only if the store
	// no longer reports one.
	expiry := r.ttl
	if remaining, err := r.client.TTL(ctx, sessionKey(sessionID)).Result(); err == nil && remaining > 0 {
		expiry = remaining
	} else {
		sess.ExpiresAt = time.Now().UTC().Add(r.ttl)
	}

	return r.persist(ctx, sess, expiry)
}

func (r *RedisStore) AppendMessage(ctx context.Context, sessionID, role, content string, metadata map[string]interface{}) error {
	return appendMessage(ctx, r, sessionID, role, content, metadata)
}

func (r *RedisStore) AppendSelectedProduct(ctx context.Context, sessionID string, product store.ProductSummary) error {
	return appendSelectedProduct(ctx, r, sessionID, product)
}

func (r *RedisStore) ClearSelectedProducts(ctx context.Context, sessionID string) error {
	return r.UpdateField(ctx, sessionID, FieldSelectedProducts, []store.ProductSummary{})
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	deleted, err := r.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, apperr.Wrap(apperr.KindUpstreamUnavailable, "session store delete failed", err)
	}
	return deleted > 0, nil
}

func (r *RedisStore) Extend(ctx context.Context, sessionID string, seconds int) (bool, error) {
	if seconds <= 0 {
		seconds = int(r.ttl.Seconds())
	}
	sess, err := r.Get(ctx, sessionID)
	if err != nil || sess == nil {
		return false, err
	}

	ttl := time.Duration(seconds) * time.Second
	sess.ExpiresAt = time.Now().UTC().Add(ttl)
	if err := r.persist(ctx, sess, ttl); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisStore) persist(ctx context.Context, sess *store.UserSession, expiry time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return apperr.Wrap(apperr.KindDataCorruption, "session marshal failed", err)
	}
	if err := r.client.SetEx(ctx, sessionKey(sess.SessionID), data, expiry).Err(); err != nil {
		return apperr.Wrap(apperr.KindUpstreamUnavailable, "session store write failed", err)
	}
	return nil
}
