package dto

// ParseRequest carries one transcribed utterance into a session. A missing
// or expired session id starts a fresh session instead of failing.
type ParseRequest struct {
	SessionId string `json:"session_id"`
	Text      string `json:"text" validate:"required"`
}

type ParseResponse struct {
	SessionId        string                 `json:"session_id"`
	Intent           string                 `json:"intent"`
	Entities         map[string]interface{} `json:"entities"`
	Confidence       float64                `json:"confidence"`
	MissingInfo      []string               `json:"missing_info"`
	Source           string                 `json:"source"`
	IsDiscovery      bool                   `json:"is_discovery"`
	Action           string                 `json:"action,omitempty"`
	TextResponse     string                 `json:"text_response,omitempty"`
	DiscoveryFilters []string               `json:"discovery_filters,omitempty"`
	DefaultQuery     string                 `json:"default_query,omitempty"`
	Products         []*ProductResponse     `json:"products,omitempty"`
}

// SearchRequest queries the catalog directly, without a dialogue turn. With
// a session id, results are also appended to the session's selection.
type SearchRequest struct {
	SessionId string                 `json:"session_id"`
	Query     string                 `json:"query"`
	TopK      int                    `json:"top_k" validate:"gte=0"`
	Filters   map[string]interface{} `json:"filters"`
	AllowAll  bool                   `json:"allow_all"`
}

type SearchResponse struct {
	Query    string             `json:"query"`
	Products []*ProductResponse `json:"products"`
}

type CheckoutRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	ProductId string `json:"product_id"`
	Text      string `json:"text"`
}

type CheckoutResponse struct {
	SessionId     string  `json:"session_id"`
	ProductId     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	TransactionId string  `json:"transaction_id,omitempty"`
}

// ConfirmRequest finalizes the pending payment of a session.
type ConfirmRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

type CancelRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

// PaymentResponse relays the settlement service's envelope.
type PaymentResponse struct {
	SessionId     string                 `json:"session_id"`
	TransactionId string                 `json:"transaction_id,omitempty"`
	Data          map[string]interface{} `json:"data,omitempty"`
}
