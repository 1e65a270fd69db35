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
	Advisor  AdvisorConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	EmbedTopicName     string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenAI string
}

type AIConfig struct {
	EmbeddingProvider string // "openai" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	OllamaLLMModel    string
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string
	TimeoutSeconds    int
}

// AdvisorConfig holds the recommendation engine tunables. These started out as
// hardcoded constants; they are env-driven so deployments can adjust retrieval
// depth and ranking strictness without a rebuild.
type AdvisorConfig struct {
	TopKSearch         int     // over-fetch size for vector retrieval
	MinRelevanceScore  float64 // ranker filter threshold
	DefaultCount       int     // recommendations per reply when unspecified
	MaxCount           int     // hard cap on requested count
	CacheTTLHours      int
	CacheBackend       string // "memory" or "redis"
	SessionIdleMinutes int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/advisor.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			EmbedTopicName:     getEnv("EMBED_TEACHING_TOPIC_NAME", "EMBED_TEACHING"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI: getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaLLMModel:    getEnv("OLLAMA_LLM_MODEL", "llama3.1:8b"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
			TimeoutSeconds:    getEnvAsInt("AI_TIMEOUT_SECONDS", 30),
		},
		Advisor: AdvisorConfig{
			TopKSearch:         getEnvAsInt("TOP_K_SEARCH", 20),
			MinRelevanceScore:  getEnvAsFloat("MIN_RELEVANCE_SCORE", 0.7),
			DefaultCount:       getEnvAsInt("DEFAULT_RECOMMENDATIONS", 5),
			MaxCount:           getEnvAsInt("MAX_RECOMMENDATIONS", 20),
			CacheTTLHours:      getEnvAsInt("CACHE_TTL_HOURS", 6),
			CacheBackend:       getEnv("CACHE_BACKEND", "memory"),
			SessionIdleMinutes: getEnvAsInt("SESSION_IDLE_MINUTES", 60),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
