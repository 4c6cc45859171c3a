package service

import (
	"context"
	"testing"
	"time"

	"ai-voiceshop-be/internal/pkg/logger"
	"ai-voiceshop-be/internal/session"
	"ai-voiceshop-be/pkg/events"
	"ai-voiceshop-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func orderCreatedEvent(sessionID string) events.BaseEvent {
	return events.BaseEvent{
		Type: events.TypeOrderCreated,
		Data: map[string]interface{}{
			"session_id":   sessionID,
			"product_id":   "nft-101",
			"product_name": "音乐节门票",
			"amount":       45.0,
			"currency":     "MATIC",
		},
		OccurredAt: time.Now(),
	}
}

func TestSettlementAnnotatesSessionHistory(t *testing.T) {
	log := logger.Nop()
	sessions := session.NewMemoryStore(600, log)
	svc := NewSettlementService(nil, sessions, log)

	ctx := context.Background()
	sess, err := sessions.Create(ctx, "user-1")
	assert.NoError(t, err)

	assert.NoError(t, svc.handleOrderCreated(ctx, orderCreatedEvent(sess.SessionID)))

	updated, err := sessions.Get(ctx, sess.SessionID)
	assert.NoError(t, err)
	assert.Len(t, updated.ConversationHistory, 1)

	msg := updated.ConversationHistory[0]
	assert.Equal(t, store.RoleAssistant, msg.Role)
	assert.Contains(t, msg.Content, "音乐节门票")
	assert.Contains(t, msg.Content, "45 MATIC")
	assert.Equal(t, "nft-101", msg.Metadata["product_id"])
}

func TestSettlementIgnoresExpiredSession(t *testing.T) {
	log := logger.Nop()
	sessions := session.NewMemoryStore(600, log)
	svc := NewSettlementService(nil, sessions, log)

	// no redelivery for a session that is already gone
	err := svc.handleOrderCreated(context.Background(), orderCreatedEvent("long-gone"))

	assert.NoError(t, err)
}

func TestSettlementDropsEventWithoutSessionID(t *testing.T) {
	log := logger.Nop()
	sessions := session.NewMemoryStore(600, log)
	svc := NewSettlementService(nil, sessions, log)

	event := events.BaseEvent{
		Type:       events.TypeOrderCreated,
		Data:       map[string]interface{}{"product_id": "nft-101"},
		OccurredAt: time.Now(),
	}

	assert.NoError(t, svc.handleOrderCreated(context.Background(), event))
}
