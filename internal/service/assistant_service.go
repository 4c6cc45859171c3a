package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/internal/dto"
	"ai-voiceshop-be/internal/entity"
	"ai-voiceshop-be/internal/pkg/logger"
	"ai-voiceshop-be/internal/session"
	"ai-voiceshop-be/pkg/ai/parser"
	"ai-voiceshop-be/pkg/catalog"
	"ai-voiceshop-be/pkg/events"
	pktNats "ai-voiceshop-be/pkg/nats"
	"ai-voiceshop-be/pkg/payment"
	"ai-voiceshop-be/pkg/retrieval"
	"ai-voiceshop-be/pkg/store"
)

type IAssistantService interface {
	Parse(ctx context.Context, req *dto.ParseRequest) (*dto.ParseResponse, error)
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	Confirm(ctx context.Context, req *dto.ConfirmRequest) (*dto.PaymentResponse, error)
	Cancel(ctx context.Context, req *dto.CancelRequest) (*dto.PaymentResponse, error)
}

// Discovery payload sent when the user asks for shopping with no concrete
// target ("不知道买什么").
var (
	discoveryFilters = []string{"热门", "新上架", "低价", "高成交"}

	discoveryReply        = "先给你热门推荐，想筛选价格或链可以告诉我"
	discoveryDefaultQuery = "热门"
)

// assistantService drives one conversation turn: session context in, parsed
// intent out, retrieval and dialogue-state writes in between.
type assistantService struct {
	sessions      session.Store
	parser        *parser.SemanticParser
	retriever     retrieval.Retriever
	catalogStore  catalog.Store
	paymentClient *payment.Client
	natsPub       *pktNats.Publisher
	log           logger.ILogger
}

func NewAssistantService(
	sessions session.Store,
	semanticParser *parser.SemanticParser,
	retriever retrieval.Retriever,
	catalogStore catalog.Store,
	paymentClient *payment.Client,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		sessions:      sessions,
		parser:        semanticParser,
		retriever:     retriever,
		catalogStore:  catalogStore,
		paymentClient: paymentClient,
		natsPub:       natsPub,
		log:           log,
	}
}

func (s *assistantService) Parse(ctx context.Context, req *dto.ParseRequest) (*dto.ParseResponse, error) {
	sess, err := s.ensureSession(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	sessionID := sess.SessionID

	sessCtx := &parser.SessionContext{
		History:          sess.ConversationHistory,
		SelectedProducts: sess.SelectedProducts,
		CurrentState:     sess.CurrentState,
	}
	result, err := s.parser.Parse(ctx, req.Text, sessCtx)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.AppendMessage(ctx, sessionID, store.RoleUser, req.Text, nil); err != nil {
		return nil, err
	}
	turnMeta := map[string]interface{}{
		"intent":     string(result.Intent),
		"confidence": result.Confidence,
	}
	reply := fmt.Sprintf("Parsed intent: %s", result.Intent)
	if err := s.sessions.AppendMessage(ctx, sessionID, store.RoleAssistant, reply, turnMeta); err != nil {
		return nil, err
	}

	response := &dto.ParseResponse{
		SessionId:   sessionID,
		Intent:      string(result.Intent),
		Entities:    result.Entities,
		Confidence:  result.Confidence,
		MissingInfo: result.MissingInfo,
		Source:      string(result.Source),
	}

	if parser.IsDiscoveryRequest(req.Text, result) {
		response.IsDiscovery = true
		response.Action = "show_discovery"
		response.TextResponse = discoveryReply
		response.DiscoveryFilters = discoveryFilters
		response.DefaultQuery = discoveryDefaultQuery
	}

	if result.Intent == parser.IntentQuery {
		products, err := s.runQuery(ctx, req.Text, result)
		if err != nil {
			return nil, err
		}
		response.Products = dto.NewProductResponses(products)

		summaries := make([]store.ProductSummary, len(products))
		for i := range products {
			summaries[i] = products[i].ToSummary()
		}
		if err := s.sessions.UpdateField(ctx, sessionID, session.FieldSelectedProducts, summaries); err != nil {
			return nil, err
		}
		if err := s.sessions.UpdateField(ctx, sessionID, session.FieldCurrentState, store.StateBrowsing); err != nil {
			return nil, err
		}
	}

	return response, nil
}

// ensureSession resolves the supplied id, starting a fresh session when the
// id is empty or points at an expired session. The caller's id becomes the
// new session's user id so the client can correlate.
func (s *assistantService) ensureSession(ctx context.Context, sessionID string) (*store.UserSession, error) {
	if sessionID != "" {
		sess, err := s.sessions.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			return sess, nil
		}
	}

	userID := sessionID
	if userID == "" {
		userID = "anonymous"
	}
	return s.sessions.Create(ctx, userID)
}

// runQuery derives the retrieval call from the parsed entities.
func (s *assistantService) runQuery(ctx context.Context, text string, result *parser.ParsedIntent) ([]entity.Product, error) {
	allowAll := false
	if v, ok := result.Entities["list_all_products"].(bool); ok {
		allowAll = v
	}

	query := buildQuery(text, result.Entities, allowAll)
	filters := buildFilters(result.Entities)
	return s.retriever.Search(ctx, query, retrieval.HardResultCap, filters, allowAll)
}

func (s *assistantService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	topK := req.TopK
	if topK == 0 {
		topK = retrieval.HardResultCap
	}
	products, err := s.retriever.Search(ctx, req.Query, topK, req.Filters, req.AllowAll)
	if err != nil {
		return nil, err
	}

	if req.SessionId != "" {
		for i := range products {
			if err := s.sessions.AppendSelectedProduct(ctx, req.SessionId, products[i].ToSummary()); err != nil {
				if apperr.IsNotFound(err) {
					break
				}
				return nil, err
			}
		}
	}

	return &dto.SearchResponse{
		Query:    req.Query,
		Products: dto.NewProductResponses(products),
	}, nil
}

func (s *assistantService) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	sess, err := s.sessions.Get(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("session %s not found or expired", req.SessionId))
	}

	productID := req.ProductId
	if productID == "" && req.Text != "" {
		if resolved := parser.ResolveReference(req.Text, sess.SelectedProducts); resolved != nil {
			productID, _ = resolved["product_id"].(string)
		}
	}
	if productID == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "no product referenced for checkout")
	}

	product, err := s.catalogStore.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	result, err := s.paymentClient.Start(ctx, &payment.Request{
		ProductID:        product.Id,
		ProductName:      product.Name,
		Amount:           strconv.FormatFloat(product.Price, 'f', -1, 64),
		RecipientAddress: product.ContractAddress,
	})
	if err != nil {
		return nil, err
	}

	if s.natsPub != nil {
		evt := events.NewOrderCreated(sess.SessionID, sess.UserID, product.Id, product.Name, product.Price, product.Currency)
		if err := s.natsPub.Publish(ctx, evt); err != nil {
			s.log.Warn("assistant", "failed to publish order event", map[string]interface{}{
				"session_id": sess.SessionID,
				"product_id": product.Id,
				"error":      err.Error(),
			})
		}
	}

	if err := s.sessions.UpdateField(ctx, req.SessionId, session.FieldCurrentState, store.StateConfirming); err != nil {
		return nil, err
	}
	reply := fmt.Sprintf("已为你发起 %s 的支付，金额 %s %s", product.Name,
		strconv.FormatFloat(product.Price, 'f', -1, 64), product.Currency)
	if err := s.sessions.AppendMessage(ctx, req.SessionId, store.RoleAssistant, reply, nil); err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		SessionId:     sess.SessionID,
		ProductId:     product.Id,
		ProductName:   product.Name,
		Amount:        product.Price,
		Currency:      product.Currency,
		TransactionId: result.TransactionID,
	}, nil
}

func (s *assistantService) Confirm(ctx context.Context, req *dto.ConfirmRequest) (*dto.PaymentResponse, error) {
	sess, err := s.sessions.Get(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("session %s not found or expired", req.SessionId))
	}

	result, err := s.paymentClient.Confirm(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.ClearSelectedProducts(ctx, req.SessionId); err != nil {
		return nil, err
	}
	if err := s.sessions.UpdateField(ctx, req.SessionId, session.FieldCurrentState, store.StateIdle); err != nil {
		return nil, err
	}

	return &dto.PaymentResponse{
		SessionId:     req.SessionId,
		TransactionId: result.TransactionID,
		Data:          result.Data,
	}, nil
}

func (s *assistantService) Cancel(ctx context.Context, req *dto.CancelRequest) (*dto.PaymentResponse, error) {
	sess, err := s.sessions.Get(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("session %s not found or expired", req.SessionId))
	}

	result, err := s.paymentClient.Cancel(ctx)
	if err != nil {
		return nil, err
	}

	// selection survives a cancel so the user can pick something else
	if err := s.sessions.UpdateField(ctx, req.SessionId, session.FieldCurrentState, store.StateBrowsing); err != nil {
		return nil, err
	}

	return &dto.PaymentResponse{
		SessionId:     req.SessionId,
		TransactionId: result.TransactionID,
		Data:          result.Data,
	}, nil
}

// queryEntityKeys contribute free text to the retrieval query, in a fixed
// order so identical entities always produce the identical query string.
var queryEntityKeys = []string{"product_name", "name", "keywords", "use_case", "category", "product_type"}

func buildQuery(text string, entities map[string]interface{}, allowAll bool) string {
	if allowAll {
		return ""
	}

	parts := make([]string, 0, len(queryEntityKeys))
	for _, key := range queryEntityKeys {
		if v, ok := entities[key].(string); ok && v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(text)
	}
	return strings.Join(parts, " ")
}

func buildFilters(entities map[string]interface{}) map[string]interface{} {
	filters := map[string]interface{}{}

	priceRange := map[string]interface{}{}
	if v, ok := numericEntity(entities["price_min"]); ok {
		priceRange["$gte"] = v
	}
	if v, ok := numericEntity(entities["price_max"]); ok {
		priceRange["$lte"] = v
	}
	if len(priceRange) > 0 {
		filters["price"] = priceRange
	}

	if v, ok := entities["chain"].(string); ok && v != "" {
		filters["chain"] = v
	}
	if v, ok := entities["currency"].(string); ok && v != "" {
		filters["currency"] = v
	}

	if len(filters) == 0 {
		return nil
	}
	return filters
}

func numericEntity(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
