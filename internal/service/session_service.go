package service

import (
	"context"

	"ai-voiceshop-be/internal/dto"
	"ai-voiceshop-be/internal/pkg/logger"
	"ai-voiceshop-be/internal/session"
	"ai-voiceshop-be/pkg/events"
	pktNats "ai-voiceshop-be/pkg/nats"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Show(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	Delete(ctx context.Context, sessionID string) (bool, error)
	Extend(ctx context.Context, sessionID string, seconds int) (bool, error)
}

type sessionService struct {
	store   session.Store
	natsPub *pktNats.Publisher
	log     logger.ILogger
}

func NewSessionService(store session.Store, natsPub *pktNats.Publisher, log logger.ILogger) ISessionService {
	return &sessionService{
		store:   store,
		natsPub: natsPub,
		log:     log,
	}
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	sess, err := s.store.Create(ctx, req.UserId)
	if err != nil {
		return nil, err
	}

	if s.natsPub != nil {
		evt := events.NewSessionStarted(sess.SessionID, sess.UserID)
		if err := s.natsPub.Publish(ctx, evt); err != nil {
			s.log.Warn("session", "failed to publish session event", map[string]interface{}{
				"session_id": sess.SessionID,
				"error":      err.Error(),
			})
		}
	}

	return dto.NewSessionResponse(sess), nil
}

func (s *sessionService) Show(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	return dto.NewSessionResponse(sess), nil
}

func (s *sessionService) Delete(ctx context.Context, sessionID string) (bool, error) {
	return s.store.Delete(ctx, sessionID)
}

func (s *sessionService) Extend(ctx context.Context, sessionID string, seconds int) (bool, error) {
	return s.store.Extend(ctx, sessionID, seconds)
}
