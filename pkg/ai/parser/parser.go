package parser

import (
	"context"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/internal/pkg/logger"
	"ai-voiceshop-be/pkg/llm"
	"ai-voiceshop-be/pkg/store"
)

const (
	defaultTemperature = 0.3
	defaultMaxHistory  = 5
	defaultMaxAttempts = 3
	defaultBackoffUnit = 800 * time.Millisecond
)

// SemanticParser turns a transcribed utterance into a ParsedIntent. Model
// calls are spaced by the injected limiter and retried with linear backoff;
// when the retry budget is exhausted the keyword fallback classifies the
// utterance instead, so Parse only fails on invalid caller input.
type SemanticParser struct {
	provider llm.LLMProvider
	limiter  *rate.Limiter
	log      logger.ILogger

	temperature float64
	maxHistory  int
	maxAttempts int
	backoffUnit time.Duration
	sleep       func(time.Duration)
}

type ParserOption func(*SemanticParser)

// WithMaxHistory sets how many conversation turns (both roles) the prompt keeps.
func WithMaxHistory(turns int) ParserOption {
	return func(p *SemanticParser) {
		if turns > 0 {
			p.maxHistory = turns
		}
	}
}

func WithParserTemperature(temp float64) ParserOption {
	return func(p *SemanticParser) {
		p.temperature = temp
	}
}

// WithBackoffUnit sets the linear retry backoff step. Tests pass zero.
func WithBackoffUnit(d time.Duration) ParserOption {
	return func(p *SemanticParser) {
		p.backoffUnit = d
	}
}

func NewSemanticParser(provider llm.LLMProvider, limiter *rate.Limiter, log logger.ILogger, opts ...ParserOption) *SemanticParser {
	p := &SemanticParser{
		provider:    provider,
		limiter:     limiter,
		log:         log,
		temperature: defaultTemperature,
		maxHistory:  defaultMaxHistory,
		maxAttempts: defaultMaxAttempts,
		backoffUnit: defaultBackoffUnit,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse classifies the utterance and extracts entities. The session context
// is optional: when present its history feeds the prompt and its surfaced
// products back ordinal/demonstrative references.
func (p *SemanticParser) Parse(ctx context.Context, text string, sessCtx *SessionContext) (*ParsedIntent, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "input text is empty")
	}

	var history []store.Message
	if sessCtx != nil {
		history = sessCtx.History
	}
	prompt := p.buildPrompt(text, history)

	response, err := p.callModel(ctx, prompt)
	if err != nil {
		p.log.Warn("parser", "model path unavailable, using fallback classifier", map[string]interface{}{
			"error": err.Error(),
		})
		result := fallbackParse(text)
		p.applyListAllOverride(text, result)
		p.logResult(result)
		return result, nil
	}

	result := p.normalizeResponse(text, response)
	if result.Source == SourceModel {
		if _, ok := result.Entities["reference"]; ok && sessCtx != nil {
			if resolved := ResolveReference(text, sessCtx.SelectedProducts); resolved != nil {
				for k, v := range resolved {
					result.Entities[k] = v
				}
			}
		}
	}
	p.applyListAllOverride(text, result)
	p.logResult(result)
	return result, nil
}

// callModel serializes outbound calls through the limiter and retries with
// linear backoff. The limiter wait is the only cross-call coordination; it
// is never held while the request is in flight.
func (p *SemanticParser) callModel(ctx context.Context, prompt string) (string, error) {
	messages := []llm.Message{{Role: "user", Content: prompt}}

	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", apperr.Wrap(apperr.KindUpstreamUnavailable, "rate limiter wait interrupted", err)
		}
		response, err := p.provider.Chat(ctx, messages, llm.WithTemperature(p.temperature))
		if err == nil {
			return response, nil
		}
		lastErr = err
		p.log.Warn("parser", "model call failed", map[string]interface{}{
			"attempt": attempt,
			"max":     p.maxAttempts,
			"error":   err.Error(),
		})
		if attempt < p.maxAttempts {
			p.sleep(p.backoffUnit * time.Duration(attempt))
		}
	}
	return "", apperr.Wrap(apperr.KindUpstreamUnavailable, "model call failed after retries", lastErr)
}

// normalizeResponse turns the raw model output into a well-formed intent.
// A parsed response carrying an unknown intent label is treated the same as
// a failed call and handed to the fallback classifier.
func (p *SemanticParser) normalizeResponse(text, response string) *ParsedIntent {
	raw := decodeResponse(response)

	intent, ok := validIntent(strings.ToUpper(raw.Intent))
	if !ok {
		p.log.Warn("parser", "model returned unknown intent label", map[string]interface{}{
			"intent": raw.Intent,
		})
		return fallbackParse(text)
	}

	entities := raw.Entities
	if entities == nil {
		entities = map[string]interface{}{}
	}
	confidence := 0.8
	if raw.Confidence != nil {
		confidence = *raw.Confidence
	}
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}
	missingInfo := raw.MissingInfo
	if missingInfo == nil {
		missingInfo = []string{}
	}

	return &ParsedIntent{
		Intent:      intent,
		Entities:    entities,
		Confidence:  confidence,
		MissingInfo: missingInfo,
		Source:      SourceModel,
	}
}

// applyListAllOverride forces full-catalog queries regardless of which path
// produced the result.
func (p *SemanticParser) applyListAllOverride(text string, result *ParsedIntent) {
	if !IsListAllRequest(text, result) {
		return
	}
	result.Intent = IntentQuery
	if result.Entities == nil {
		result.Entities = map[string]interface{}{}
	}
	result.Entities["list_all_products"] = true
	result.MissingInfo = []string{}
	if result.Confidence < 0.8 {
		result.Confidence = 0.8
	}
}

func (p *SemanticParser) logResult(result *ParsedIntent) {
	p.log.Info("parser", "parse completed", map[string]interface{}{
		"intent":     string(result.Intent),
		"confidence": result.Confidence,
		"entities":   len(result.Entities),
		"source":     string(result.Source),
	})
}
