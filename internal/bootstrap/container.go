package bootstrap

import (
	"context"
	"fmt"
	"time"

	"faq-chatbot-be/internal/config"
	"faq-chatbot-be/internal/controller"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/pkg/serverutils"
	"faq-chatbot-be/internal/repository/unitofwork"
	"faq-chatbot-be/internal/service"
	"faq-chatbot-be/pkg/embedding"
	"faq-chatbot-be/pkg/events"
	"faq-chatbot-be/pkg/knowledge"
	"faq-chatbot-be/pkg/llm"
	"faq-chatbot-be/pkg/llm/factory"
	"faq-chatbot-be/pkg/rag"
	"faq-chatbot-be/pkg/utils"
	"faq-chatbot-be/pkg/websearch"

	pktNats "faq-chatbot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const bootModule = "BOOT"

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	FileController controller.IFileController
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService      service.IConsumerService
	CurationAuditService service.ICurationAuditService

	Logger  logger.ILogger
	closers []func()
}

// Close releases broker and cache connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	ragLogger := logger.NewIsolatedLogger(cfg.App.RagLogFilePath)
	c := &Container{Logger: sysLogger}

	// 2. Providers
	embeddingProvider, err := NewEmbeddingProvider(cfg)
	if err != nil {
		return nil, err
	}
	llmProvider, err := NewLLMProvider(cfg)
	if err != nil {
		return nil, err
	}
	searchProvider, err := websearch.NewProvider(cfg.Ai.WebSearchProvider, cfg.Keys.Tavily)
	if err != nil {
		return nil, err
	}
	sysLogger.Info(bootModule, "Providers ready", map[string]interface{}{
		"embedding":  cfg.Ai.EmbeddingProvider,
		"llm":        cfg.Ai.LLMProvider,
		"llm_model":  cfg.Ai.LLMModel,
		"web_search": cfg.Ai.WebSearchProvider,
	})

	// 3. Infrastructure
	// Embed job queue
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// NATS (optional; curation events are dropped without it)
	var eventPublisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn(bootModule, "NATS publisher unavailable", map[string]interface{}{"error": err.Error()})
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn(bootModule, "NATS subscriber unavailable", map[string]interface{}{"error": err.Error()})
	} else {
		c.CurationAuditService = service.NewCurationAuditService(natsSub, ragLogger)
		c.closers = append(c.closers, natsSub.Close)
	}

	// Redis, with go-cache behind it
	historyTTL := time.Duration(cfg.Rag.HistoryCacheTTLMin) * time.Minute
	memoryCache := service.NewMemoryHistoryCache(historyTTL)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn(bootModule, "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		sysLogger.Warn(bootModule, "Redis unreachable, history cache is in-process", map[string]interface{}{"error": err.Error()})
	}
	historyCache := service.NewRedisHistoryCache(rdb, historyTTL, memoryCache, sysLogger)
	c.closers = append(c.closers, func() { _ = rdb.Close() })

	// 4. Knowledge store and engine
	var store knowledge.Store = service.NewKnowledgeStore(uowFactory, embeddingProvider, cfg.Rag.MaxContextFragments, sysLogger)
	store = service.NewEventingStore(store, eventPublisher, sysLogger)
	engine := rag.NewEngine(llmProvider, searchProvider, store, ragLogger)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Rag.EmbedTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Rag.EmbedTopic,
		uowFactory,
		store,
		utils.NewTokenSplitter(cfg.Rag.ChunkSize, cfg.Rag.ChunkOverlap),
		eventPublisher,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, cfg.Auth, sysLogger)
	fileService := service.NewFileService(uowFactory, publisherService, embeddingProvider, cfg.Rag.SearchThreshold, sysLogger)
	chatService := service.NewChatService(uowFactory, engine, store, historyCache, cfg.Rag.HistoryTurns, sysLogger)

	// 6. Controllers
	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret)
	c.AuthController = controller.NewAuthController(authService)
	c.FileController = controller.NewFileController(fileService, jwtMiddleware)
	c.ChatController = controller.NewChatController(chatService, jwtMiddleware)

	return c, nil
}

// NewEmbeddingProvider picks the embedding backend named in config.
func NewEmbeddingProvider(cfg *config.Config) (embedding.EmbeddingProvider, error) {
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel), nil
	case "openai":
		if cfg.Keys.OpenAI == "" {
			return nil, fmt.Errorf("openai embeddings require OPENAI_API_KEY")
		}
		return embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Keys.OpenAIBase, cfg.Ai.EmbeddingModel), nil
	case "gemini":
		if cfg.Keys.GoogleGemini == "" {
			return nil, fmt.Errorf("gemini embeddings require GOOGLE_GEMINI_API_KEY")
		}
		return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Ai.EmbeddingProvider)
	}
}

func NewLLMProvider(cfg *config.Config) (llm.LLMProvider, error) {
	return factory.NewLLMProvider(factory.ProviderConfig{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		OpenAIKey:     cfg.Keys.OpenAI,
		OpenAIBaseURL: cfg.Keys.OpenAIBase,
		AnthropicKey:  cfg.Keys.Anthropic,
	})
}
