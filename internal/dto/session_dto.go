package dto

import (
	"time"

	"ai-voiceshop-be/pkg/store"
)

type CreateSessionRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

type SessionResponse struct {
	SessionId        string                 `json:"session_id"`
	UserId           string                 `json:"user_id"`
	CurrentState     string                 `json:"current_state"`
	History          []store.Message        `json:"conversation_history"`
	SelectedProducts []store.ProductSummary `json:"selected_products"`
	CreatedAt        time.Time              `json:"created_at"`
	ExpiresAt        time.Time              `json:"expires_at"`
}

func NewSessionResponse(s *store.UserSession) *SessionResponse {
	return &SessionResponse{
		SessionId:        s.SessionID,
		UserId:           s.UserID,
		CurrentState:     s.CurrentState,
		History:          s.ConversationHistory,
		SelectedProducts: s.SelectedProducts,
		CreatedAt:        s.CreatedAt,
		ExpiresAt:        s.ExpiresAt,
	}
}
