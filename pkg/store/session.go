package store

import "time"

// Message is one turn of the conversation history.
type Message struct {
	Role      string                 `json:"role"` // "user" | "assistant"
	Content   string                 `json:"content"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// ProductSummary is the slice of a product the dialogue state keeps after the
// product was surfaced to the user. Insertion order is presentation order,
// which is what ordinal references ("the first one") resolve against.
type ProductSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Chain    string  `json:"chain"`
}

// UserSession is the per-user dialogue state, one JSON document per session
// in the backing store.
type UserSession struct {
	SessionID           string           `json:"session_id"`
	UserID              string           `json:"user_id"`
	ConversationHistory []Message        `json:"conversation_history"`
	SelectedProducts    []ProductSummary `json:"selected_products"`
	CurrentState        string           `json:"current_state"`
	CreatedAt           time.Time        `json:"created_at"`
	ExpiresAt           time.Time        `json:"expires_at"`
}

// Dialogue states
const (
	StateIdle       = "IDLE"
	StateBrowsing   = "BROWSING"
	StateConfirming = "CONFIRMING"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// IsExpired reports whether the session's logical TTL has lapsed. A lapsed
// but not yet purged record is treated as absent everywhere.
func (s *UserSession) IsExpired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}

// LastMessages returns the most recent n history entries.
func (s *UserSession) LastMessages(n int) []Message {
	if n <= 0 || n >= len(s.ConversationHistory) {
		return s.ConversationHistory
	}
	return s.ConversationHistory[len(s.ConversationHistory)-n:]
}
