package service

import (
	"context"
	"fmt"
	"strconv"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/internal/pkg/logger"
	"ai-voiceshop-be/internal/session"
	"ai-voiceshop-be/pkg/events"
	pktNats "ai-voiceshop-be/pkg/nats"
	"ai-voiceshop-be/pkg/store"
)

// SettlementService consumes order events off the bus and writes a
// settlement note into the originating session's dialogue history, so a
// later HISTORY turn can surface the order status.
type SettlementService struct {
	subscriber *pktNats.Subscriber
	sessions   session.Store
	log        logger.ILogger
}

func NewSettlementService(sub *pktNats.Subscriber, sessions session.Store, log logger.ILogger) *SettlementService {
	return &SettlementService{
		subscriber: sub,
		sessions:   sessions,
		log:        log,
	}
}

// Start begins listening for order events with a durable consumer.
func (s *SettlementService) Start() {
	subject := pktNats.Subject(events.TypeOrderCreated)
	if err := s.subscriber.Subscribe(subject, "settlement-worker", s.handleOrderCreated); err != nil {
		s.log.Error("settlement", "failed to start order event subscriber", map[string]interface{}{
			"subject": subject,
			"error":   err.Error(),
		})
		return
	}
	s.log.Info("settlement", "listening for order events", map[string]interface{}{"subject": subject})
}

func (s *SettlementService) handleOrderCreated(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	sessionID, _ := payload["session_id"].(string)
	if sessionID == "" {
		s.log.Warn("settlement", "order event without session id, dropping", map[string]interface{}{
			"payload": payload,
		})
		return nil
	}

	productName, _ := payload["product_name"].(string)
	amount, _ := payload["amount"].(float64)
	currency, _ := payload["currency"].(string)

	note := fmt.Sprintf("订单已创建：%s，金额 %s %s，等待链上确认",
		productName, strconv.FormatFloat(amount, 'f', -1, 64), currency)
	meta := map[string]interface{}{
		"event":      event.EventType(),
		"product_id": payload["product_id"],
	}

	err := s.sessions.AppendMessage(ctx, sessionID, store.RoleAssistant, note, meta)
	if apperr.IsNotFound(err) {
		// Session expired before the order event arrived. Nothing to annotate
		// and redelivery cannot help.
		return nil
	}
	return err
}
