package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-voiceshop-be/internal/config"
	"ai-voiceshop-be/internal/controller"
	"ai-voiceshop-be/internal/pkg/logger"
	"ai-voiceshop-be/internal/repository/implementation"
	"ai-voiceshop-be/internal/service"
	"ai-voiceshop-be/internal/session"
	"ai-voiceshop-be/pkg/ai/parser"
	"ai-voiceshop-be/pkg/catalog"
	"ai-voiceshop-be/pkg/embedding"
	"ai-voiceshop-be/pkg/llm/factory"
	"ai-voiceshop-be/pkg/payment"
	"ai-voiceshop-be/pkg/retrieval"

	pktNats "ai-voiceshop-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	SessionController   controller.ISessionController
	CatalogController   controller.ICatalogController
	HealthController    controller.IHealthController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus (in-process, for the embedding worker)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	}

	// LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	// Session store
	var sessionStore session.Store
	if cfg.Session.Backend == "memory" {
		sessionStore = session.NewMemoryStore(cfg.Session.TTLSeconds, sysLogger)
		log.Printf("[INFO] Using Session Backend: MEMORY")
	} else {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionStore = session.NewRedisStore(rdb, cfg.Session.TTLSeconds, sysLogger)
		log.Printf("[INFO] Using Session Backend: REDIS")
	}

	// Semantic parser with its process-wide call spacing
	minInterval := time.Duration(cfg.Ai.MinCallIntervalMs) * time.Millisecond
	limiter := rate.NewLimiter(rate.Every(minInterval), 1)
	semanticParser := parser.NewSemanticParser(
		llmProvider,
		limiter,
		sysLogger,
		parser.WithMaxHistory(cfg.Ai.MaxHistoryTurns),
	)

	// Catalog storage + retrieval strategy, selected together. The vector
	// backend needs Postgres; the lexical backend runs off the JSON file.
	var catalogStore catalog.Store
	var retriever retrieval.Retriever
	var publisherService service.IPublisherService
	var consumerService service.IConsumerService
	if cfg.Ai.RetrievalBackend == "vector" {
		if db == nil {
			log.Fatalf("[FATAL] Vector retrieval backend requires a database connection")
		}
		productRepo := implementation.NewProductRepository(db)
		dbStore := catalog.NewDBStore(productRepo)
		catalogStore = dbStore
		retriever = retrieval.NewVectorRetriever(embeddingProvider, dbStore, cfg.Ai.EmbeddingDim, sysLogger)
		publisherService = service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
		consumerService = service.NewConsumerService(pubSub, cfg.Keys.EmbedTopic, productRepo, embeddingProvider, cfg.Ai.EmbeddingDim)
		log.Printf("[INFO] Using Retrieval Backend: VECTOR (pgvector)")
	} else {
		fileStore := catalog.NewFileStore(cfg.Ai.CatalogFilePath, sysLogger)
		catalogStore = fileStore
		retriever = retrieval.NewLexicalRetriever(fileStore, sysLogger)
		log.Printf("[INFO] Using Retrieval Backend: LEXICAL (%s)", cfg.Ai.CatalogFilePath)
	}

	paymentClient := payment.NewClient(cfg.Payment.Web3ServiceURL)

	// Settlement worker: annotates sessions when order events come back.
	settlementService := service.NewSettlementService(natsSub, sessionStore, sysLogger)
	if natsSub != nil {
		go settlementService.Start()
	}

	sessionService := service.NewSessionService(sessionStore, natsPub, sysLogger)
	catalogService := service.NewCatalogService(catalogStore, publisherService, natsPub, sysLogger)
	assistantService := service.NewAssistantService(
		sessionStore,
		semanticParser,
		retriever,
		catalogStore,
		paymentClient,
		natsPub,
		sysLogger,
	)

	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		SessionController:   controller.NewSessionController(sessionService),
		CatalogController:   controller.NewCatalogController(catalogService),
		HealthController:    controller.NewHealthController(),
		ConsumerService:     consumerService,
	}
}
