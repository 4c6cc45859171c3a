package parser

import (
	"ai-voiceshop-be/pkg/store"
)

// IntentType classifies what the user is asking the assistant to do.
type IntentType string

const (
	IntentQuery    IntentType = "QUERY"
	IntentPurchase IntentType = "PURCHASE"
	IntentConfirm  IntentType = "CONFIRM"
	IntentCancel   IntentType = "CANCEL"
	IntentHelp     IntentType = "HELP"
	IntentHistory  IntentType = "HISTORY"
)

// ParseSource records which path produced a ParsedIntent.
type ParseSource string

const (
	SourceModel    ParseSource = "model"
	SourceFallback ParseSource = "fallback"
)

// ParsedIntent is the structured result of interpreting one user utterance.
type ParsedIntent struct {
	Intent      IntentType             `json:"intent"`
	Entities    map[string]interface{} `json:"entities"`
	Confidence  float64                `json:"confidence"`
	MissingInfo []string               `json:"missing_info"`
	Source      ParseSource            `json:"source"`
}

// IsAcceptable reports whether the intent's confidence meets the threshold.
func (p *ParsedIntent) IsAcceptable(threshold float64) bool {
	return p.Confidence >= threshold
}

// SessionContext carries the pieces of conversation state the parser consults.
type SessionContext struct {
	History          []store.Message
	SelectedProducts []store.ProductSummary
	CurrentState     string
}

func validIntent(s string) (IntentType, bool) {
	switch IntentType(s) {
	case IntentQuery, IntentPurchase, IntentConfirm, IntentCancel, IntentHelp, IntentHistory:
		return IntentType(s), true
	}
	return "", false
}
