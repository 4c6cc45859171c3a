// Package session owns the TTL-bounded per-user dialogue state. Two backends
// implement the same contract: Redis for deployments and an in-process
// go-cache store for tests and redis-less setups. Every mutation is a
// read-modify-write of the whole JSON document; concurrent writers to the
// same session are not serialized (dialogue is single-threaded per user, so
// last writer wins).
package session

import (
	"context"
	"fmt"
	"time"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/pkg/store"
)

// Recognized UpdateField targets.
const (
	FieldConversationHistory = "conversation_history"
	FieldSelectedProducts    = "selected_products"
	FieldCurrentState        = "current_state"
	FieldUserID              = "user_id"
)

const keyPrefix = "session:"

// Store is the session store contract. Get returns (nil, nil) for an absent
// or expired session; mutating operations fail with a NotFound error instead,
// and callers recover by creating a fresh session, not by retrying.
type Store interface {
	Create(ctx context.Context, userID string) (*store.UserSession, error)
	Get(ctx context.Context, sessionID string) (*store.UserSession, error)
	UpdateField(ctx context.Context, sessionID, field string, value interface{}) error
	AppendMessage(ctx context.Context, sessionID, role, content string, metadata map[string]interface{}) error
	AppendSelectedProduct(ctx context.Context, sessionID string, product store.ProductSummary) error
	ClearSelectedProducts(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID string) (bool, error)
	Extend(ctx context.Context, sessionID string, seconds int) (bool, error)
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

func notFound(sessionID string) error {
	return apperr.New(apperr.KindNotFound, fmt.Sprintf("session %s not found or expired", sessionID))
}

// applyField mutates one recognized session attribute. Unknown fields and
// mismatched value types are both caller errors.
func applyField(s *store.UserSession, field string, value interface{}) error {
	switch field {
	case FieldConversationHistory:
		v, ok := value.([]store.Message)
		if !ok {
			return apperr.New(apperr.KindInvalidInput, "conversation_history expects []store.Message")
		}
		s.ConversationHistory = v
	case FieldSelectedProducts:
		v, ok := value.([]store.ProductSummary)
		if !ok {
			return apperr.New(apperr.KindInvalidInput, "selected_products expects []store.ProductSummary")
		}
		s.SelectedProducts = v
	case FieldCurrentState:
		v, ok := value.(string)
		if !ok {
			return apperr.New(apperr.KindInvalidInput, "current_state expects string")
		}
		s.CurrentState = v
	case FieldUserID:
		v, ok := value.(string)
		if !ok {
			return apperr.New(apperr.KindInvalidInput, "user_id expects string")
		}
		s.UserID = v
	default:
		return apperr.New(apperr.KindInvalidInput, fmt.Sprintf("invalid session field: %s", field))
	}
	return nil
}

// appendMessage composes Get + append + UpdateField for any backend.
func appendMessage(ctx context.Context, s Store, sessionID, role, content string, metadata map[string]interface{}) error {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		return notFound(sessionID)
	}

	msg := store.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	if len(metadata) > 0 {
		msg.Metadata = metadata
	}

	history := append(sess.ConversationHistory, msg)
	return s.UpdateField(ctx, sessionID, FieldConversationHistory, history)
}

func appendSelectedProduct(ctx context.Context, s Store, sessionID string, product store.ProductSummary) error {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		return notFound(sessionID)
	}

	products := append(sess.SelectedProducts, product)
	return s.UpdateField(ctx, sessionID, FieldSelectedProducts, products)
}
