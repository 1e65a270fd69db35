package bootstrap

import (
	"context"
	"log"
	"time"

	"sermon-advisor-be/internal/config"
	"sermon-advisor-be/internal/controller"
	"sermon-advisor-be/internal/pkg/logger"
	"sermon-advisor-be/internal/repository/unitofwork"
	"sermon-advisor-be/internal/service"
	"sermon-advisor-be/pkg/embedding"
	"sermon-advisor-be/pkg/llm/factory"
	pktNats "sermon-advisor-be/pkg/nats"
	"sermon-advisor-be/pkg/recommend"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AdvisorController  controller.IAdvisorController
	TeachingController controller.ITeachingController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared infra kept for shutdown
	NatsPublisher *pktNats.Publisher
	Logger        logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus (in-process embedding queue)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

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

	// 4. NATS event bus (cross-service notifications)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 5. Result cache backend
	cacheTTL := time.Duration(cfg.Advisor.CacheTTLHours) * time.Hour
	var resultCache recommend.ResultCache
	if cfg.Advisor.CacheBackend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		resultCache = recommend.NewRedisResultCache(rdb, cacheTTL)
		log.Printf("[INFO] Using Result Cache: REDIS")
	} else {
		resultCache = recommend.NewMemoryResultCache(cacheTTL)
		log.Printf("[INFO] Using Result Cache: MEMORY")
	}

	// 6. Recommendation engine
	engine := recommend.NewEngine(
		recommend.NewIntentParser(cfg.Advisor.DefaultCount, cfg.Advisor.MaxCount),
		recommend.NewRetriever(embeddingProvider, uowFactory, sysLogger, cfg.Advisor.TopKSearch),
		recommend.NewRanker(llmProvider, sysLogger, cfg.Advisor.MinRelevanceScore),
		recommend.NewReplyGenerator(llmProvider, sysLogger),
		resultCache,
		recommend.NewSessionStore(time.Duration(cfg.Advisor.SessionIdleMinutes)*time.Minute),
		uowFactory,
		sysLogger,
		time.Duration(cfg.Ai.TimeoutSeconds)*time.Second,
	)

	// 7. Services
	publisherService := service.NewPublisherService(cfg.App.EmbedTopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EmbedTopicName,
		uowFactory,
		embeddingProvider,
	)
	advisorService := service.NewAdvisorService(engine)
	teachingService := service.NewTeachingService(uowFactory, publisherService, natsPub)

	// 8. Controllers
	return &Container{
		AdvisorController:  controller.NewAdvisorController(advisorService),
		TeachingController: controller.NewTeachingController(teachingService),
		ConsumerService:    consumerService,
		NatsPublisher:      natsPub,
		Logger:             sysLogger,
	}
}
