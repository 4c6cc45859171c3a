package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Session  SessionConfig
	Payment  PaymentConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
	EmbedTopic   string // Product embedding topic
}

type AIConfig struct {
	LLMProvider       string // "ollama" or "openai"
	LLMModel          string
	OllamaBaseURL     string
	EmbeddingProvider string // "ollama" or "gemini"
	EmbeddingModel    string
	EmbeddingDim      int    // Must match the vector column dimension
	RetrievalBackend  string // "vector" or "lexical"
	CatalogFilePath   string // Local product file for the lexical backend
	MinCallIntervalMs int    // Minimum spacing between outbound LLM calls
	MaxHistoryTurns   int
}

type SessionConfig struct {
	TTLSeconds int
	Backend    string // "redis" or "memory"
}

type PaymentConfig struct {
	Web3ServiceURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			EmbedTopic:   getEnv("EMBED_PRODUCT_TOPIC_NAME", "EMBED_PRODUCT"),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "qwen2.5"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingDim:      getEnvAsInt("EMBEDDING_DIM", 768),
			RetrievalBackend:  getEnv("RETRIEVAL_BACKEND", "lexical"),
			CatalogFilePath:   getEnv("CATALOG_FILE_PATH", "data/products.json"),
			MinCallIntervalMs: getEnvAsInt("LLM_MIN_CALL_INTERVAL_MS", 1200),
			MaxHistoryTurns:   getEnvAsInt("PARSER_MAX_HISTORY_TURNS", 5),
		},
		Session: SessionConfig{
			TTLSeconds: getEnvAsInt("SESSION_TTL_SECONDS", 600),
			Backend:    getEnv("SESSION_BACKEND", "redis"),
		},
		Payment: PaymentConfig{
			Web3ServiceURL: getEnv("WEB3_SERVICE_URL", "http://localhost:3001"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
