package bootstrap

import (
	"context"
	"log"

	"trip-planner-be/internal/config"
	"trip-planner-be/internal/controller"
	"trip-planner-be/internal/handler"
	"trip-planner-be/internal/pkg/logger"
	"trip-planner-be/internal/repository/memory"
	"trip-planner-be/internal/service"
	"trip-planner-be/internal/websocket"
	"trip-planner-be/pkg/llm"
	"trip-planner-be/pkg/llm/factory"
	pktNats "trip-planner-be/pkg/nats"
	"trip-planner-be/pkg/planner"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	PlannerController controller.IPlannerController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	SelectionHandler *handler.SelectionHandler
	WebSocketHub     *websocket.Hub

	sessionRepo *memory.SessionRepository
	closers     []func()
}

func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(ctx, providerConfig(cfg))
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	completionOpts := []llm.Option{llm.WithThinkingBudget(cfg.Ai.ThinkingBudget)}
	if cfg.Ai.Temperature >= 0 {
		completionOpts = append(completionOpts, llm.WithTemperature(cfg.Ai.Temperature))
	}
	orchestrator := planner.NewOrchestrator(llmProvider, planner.WithCompletionOptions(completionOpts...))

	// In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL)

	c := &Container{sessionRepo: sessionRepo}

	// 4. Infrastructure, each piece optional
	// NATS
	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// Redis
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// WebSocket Hub
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run(ctx)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.EventsTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EventsTopic,
		wsHub,
		forwarder,
		sysLogger,
	)
	plannerService := service.NewPlannerService(
		orchestrator,
		sessionRepo,
		publisherService,
		sysLogger,
		cfg.Ai.Timeout,
	)

	c.closers = append(c.closers, func() {
		_ = pubSub.Close()
		_ = sysLogger.Sync()
		_ = wsLogger.Sync()
	})

	// 6. Controllers & Handlers
	c.PlannerController = controller.NewPlannerController(plannerService)
	c.SelectionHandler = handler.NewSelectionHandler(plannerService, wsHub, wsLogger)
	c.WebSocketHub = wsHub
	c.ConsumerService = consumerService
	return c
}

// SessionCount reports how many planner sessions are live.
func (c *Container) SessionCount() int {
	return c.sessionRepo.Count()
}

// Close releases external connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func providerConfig(cfg *config.Config) factory.ProviderConfig {
	pc := factory.ProviderConfig{
		Type:    cfg.Ai.LLMProvider,
		Model:   cfg.Ai.LLMModel,
		Timeout: cfg.Ai.Timeout,
	}
	switch cfg.Ai.LLMProvider {
	case "ollama":
		pc.BaseURL = cfg.Ai.OllamaBaseURL
	case "huggingface":
		pc.BaseURL = cfg.Ai.HFBaseURL
		pc.APIKey = cfg.Keys.HuggingFace
	default:
		pc.APIKey = cfg.Keys.GoogleGemini
	}
	return pc
}
