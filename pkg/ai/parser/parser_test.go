package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/internal/pkg/logger"
	"ai-voiceshop-be/pkg/llm"
	"ai-voiceshop-be/pkg/store"
)

// scriptedProvider replays canned responses or errors, one per call.
type scriptedProvider struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func newTestParser(provider llm.LLMProvider) *SemanticParser {
	return NewSemanticParser(
		provider,
		rate.NewLimiter(rate.Inf, 1),
		logger.Nop(),
		WithBackoffUnit(0),
	)
}

func TestParseRejectsEmptyInput(t *testing.T) {
	p := newTestParser(&scriptedProvider{})

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := p.Parse(context.Background(), text, nil)
		assert.Error(t, err)
		assert.True(t, apperr.IsInvalidInput(err))
	}
}

func TestParseModelPath(t *testing.T) {
	provider := &scriptedProvider{
		responses: []string{`{"intent": "query", "entities": {"category": "游戏道具", "price_max": 100}, "confidence": 0.92, "missing_info": []}`},
	}
	p := newTestParser(provider)

	result, err := p.Parse(context.Background(), "我想要一个100以下的游戏道具", nil)
	assert.NoError(t, err)
	assert.Equal(t, IntentQuery, result.Intent)
	assert.Equal(t, SourceModel, result.Source)
	assert.Equal(t, 0.92, result.Confidence)
	assert.Equal(t, "游戏道具", result.Entities["category"])
}

func TestParseResolvesReference(t *testing.T) {
	provider := &scriptedProvider{
		responses: []string{`{"intent": "purchase", "entities": {"reference": "first", "reference_type": "ordinal"}, "confidence": 0.88}`},
	}
	p := newTestParser(provider)

	sessCtx := &SessionContext{
		SelectedProducts: []store.ProductSummary{
			{ID: "nft-001", Name: "Cosmic Pass"},
			{ID: "nft-002", Name: "Pixel Sword"},
		},
	}
	result, err := p.Parse(context.Background(), "买第一个", sessCtx)
	assert.NoError(t, err)
	assert.Equal(t, IntentPurchase, result.Intent)
	assert.Equal(t, "nft-001", result.Entities["product_id"])
	assert.Equal(t, "Cosmic Pass", result.Entities["product_name"])
	assert.Equal(t, true, result.Entities["reference_resolved"])
}

func TestParseFallsBackAfterRetryBudget(t *testing.T) {
	boom := errors.New("connection refused")
	provider := &scriptedProvider{errs: []error{boom, boom, boom}}
	p := newTestParser(provider)

	result, err := p.Parse(context.Background(), "帮我找一个NFT", nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, provider.calls)
	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, IntentQuery, result.Intent)
	assert.Equal(t, "NFT", result.Entities["product_type"])
}

func TestParseRetriesThenSucceeds(t *testing.T) {
	provider := &scriptedProvider{
		errs:      []error{errors.New("timeout"), nil},
		responses: []string{"", `{"intent": "cancel", "entities": {}, "confidence": 0.95}`},
	}
	p := newTestParser(provider)

	result, err := p.Parse(context.Background(), "取消", nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
	assert.Equal(t, IntentCancel, result.Intent)
	assert.Equal(t, SourceModel, result.Source)
}

func TestParseListAllOverride(t *testing.T) {
	// Model classifies it as HELP at low confidence; the override wins.
	provider := &scriptedProvider{
		responses: []string{`{"intent": "help", "entities": {}, "confidence": 0.3, "missing_info": ["商品名称或类型"]}`},
	}
	p := newTestParser(provider)

	result, err := p.Parse(context.Background(), "列出所有商品", nil)
	assert.NoError(t, err)
	assert.Equal(t, IntentQuery, result.Intent)
	assert.Equal(t, true, result.Entities["list_all_products"])
	assert.Empty(t, result.MissingInfo)
	assert.GreaterOrEqual(t, result.Confidence, 0.8)
}

func TestParseListAllOverrideOnFallback(t *testing.T) {
	boom := errors.New("down")
	provider := &scriptedProvider{errs: []error{boom, boom, boom}}
	p := newTestParser(provider)

	result, err := p.Parse(context.Background(), "展示全部商品", nil)
	assert.NoError(t, err)
	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, true, result.Entities["list_all_products"])
	assert.GreaterOrEqual(t, result.Confidence, 0.8)
}

func TestParseUnknownIntentLabelFallsBack(t *testing.T) {
	provider := &scriptedProvider{
		responses: []string{`{"intent": "browse", "entities": {}, "confidence": 0.9}`},
	}
	p := newTestParser(provider)

	result, err := p.Parse(context.Background(), "搜索音乐会门票", nil)
	assert.NoError(t, err)
	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, IntentQuery, result.Intent)
}

func TestParseClampsConfidence(t *testing.T) {
	provider := &scriptedProvider{
		responses: []string{`{"intent": "query", "entities": {"category": "艺术品"}, "confidence": 1.7}`},
	}
	p := newTestParser(provider)

	result, err := p.Parse(context.Background(), "找艺术品", nil)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, result.Confidence)
	assert.True(t, result.IsAcceptable(0.7))
}

func TestParseUnparseableResponse(t *testing.T) {
	provider := &scriptedProvider{
		responses: []string{"抱歉，我没明白。"},
	}
	p := newTestParser(provider)

	result, err := p.Parse(context.Background(), "呃……", nil)
	assert.NoError(t, err)
	assert.Equal(t, IntentHelp, result.Intent)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, []string{"无法解析响应"}, result.MissingInfo)
	assert.False(t, result.IsAcceptable(0.5))
}

func TestIsAcceptableThresholdBoundary(t *testing.T) {
	assert.True(t, (&ParsedIntent{Confidence: 0.7}).IsAcceptable(0.7))
	assert.True(t, (&ParsedIntent{Confidence: 0.71}).IsAcceptable(0.7))
	assert.False(t, (&ParsedIntent{Confidence: 0.69}).IsAcceptable(0.7))
}
