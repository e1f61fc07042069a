package bootstrap

import (
	"context"
	"log"
	"os"

	"ai-vocabcoach-be/internal/config"
	"ai-vocabcoach-be/internal/controller"
	"ai-vocabcoach-be/internal/pkg/logger"
	"ai-vocabcoach-be/internal/repository/unitofwork"
	"ai-vocabcoach-be/internal/service"
	"ai-vocabcoach-be/pkg/embedding"
	"ai-vocabcoach-be/pkg/embedding/jina"
	"ai-vocabcoach-be/pkg/evaluator"
	"ai-vocabcoach-be/pkg/events"
	"ai-vocabcoach-be/pkg/llm/factory"
	"ai-vocabcoach-be/pkg/transcript"

	pktNats "ai-vocabcoach-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	UserController     controller.IUserController
	WordController     controller.IWordController
	PracticeController controller.IPracticeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Backends
	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Initialize LLM Provider based on Config
	llmBaseURL := cfg.Ai.LLMBaseURL
	if cfg.Ai.LLMProvider == "ollama" && llmBaseURL == "" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.LLMAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Dedicated LLM trace log, kept out of the main application log.
	llmLogWriter := os.Stdout
	if f, err := os.OpenFile(cfg.App.LLMLogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
		llmLogWriter = f
	} else {
		log.Printf("[WARN] Failed to open LLM log file: %v. Logging to stdout", err)
	}
	llmLogger := log.New(llmLogWriter, "[llm] ", log.LstdFlags)

	// Transcript store: Redis with in-memory fallback.
	transcripts := transcript.NewStore(cfg.App.RedisURL)

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Audit consumer: every lifecycle event lands in the structured log.
	if natsSub != nil {
		err := natsSub.Subscribe("events.>", "vocabcoach-audit", func(ctx context.Context, event events.Event) error {
			sysLogger.Info("audit", "Event received", map[string]interface{}{
				"event_type": event.EventType(),
				"payload":    event.Payload(),
			})
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to start audit consumer: %v", err)
		}
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedMemoryTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedMemoryTopic,
		uowFactory,
		embeddingProvider,
	)

	memoryService := service.NewMemoryService(
		uowFactory,
		publisherService,
		embeddingProvider,
		cfg.Practice.MemoryRecallLimit,
		sysLogger,
	)

	runner := evaluator.NewGateway(llmProvider, transcripts, llmLogger)

	authService := service.NewAuthService(uowFactory)
	userService := service.NewUserService(uowFactory, cfg.Practice)
	wordService := service.NewWordService(uowFactory)
	practiceService := service.NewPracticeService(
		uowFactory,
		runner,
		memoryService,
		natsPub,
		cfg.Practice,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		UserController:     controller.NewUserController(userService),
		WordController:     controller.NewWordController(wordService),
		PracticeController: controller.NewPracticeController(practiceService),

		ConsumerService: consumerService,

		Logger: sysLogger,
	}
}
