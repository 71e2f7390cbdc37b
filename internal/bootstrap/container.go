package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"airport-assistant-be/internal/config"
	"airport-assistant-be/internal/controller"
	"airport-assistant-be/internal/model"
	"airport-assistant-be/internal/pkg/logger"
	"airport-assistant-be/internal/repository/implementation"
	"airport-assistant-be/internal/repository/memory"
	"airport-assistant-be/internal/service"
	"airport-assistant-be/pkg/events"
	"airport-assistant-be/pkg/fallback"
	"airport-assistant-be/pkg/kvstore"
	"airport-assistant-be/pkg/llm"
	"airport-assistant-be/pkg/llm/factory"
	pktNats "airport-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"golang.org/x/crypto/bcrypt"
)

const eventTopic = "airport.events"

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	AuthController      controller.IAuthController

	// Background Services (Exposed for main.go to run). Nil when events go to NATS.
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}

	// 1. Persistent stores
	cacheStore, err := kvstore.Open[string](cfg.Storage.CacheFile)
	if err != nil {
		return nil, fmt.Errorf("open response cache: %w", err)
	}
	userStore, err := kvstore.Open[model.User](cfg.Storage.UserDataFile, kvstore.WithIndent())
	if err != nil {
		return nil, fmt.Errorf("open user data: %w", err)
	}
	sysLogger.Info("BOOT", "Stores loaded", map[string]interface{}{
		"cache_file":     cacheStore.Path(),
		"cached_answers": cacheStore.Len(),
		"user_file":      userStore.Path(),
		"users":          userStore.Len(),
	})

	// 2. Event Bus
	var publisher events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOT", "Failed to connect to NATS, using in-process bus", map[string]interface{}{"error": err.Error()})
		} else {
			publisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}
	if publisher == nil {
		bus := events.NewChannelBus(eventTopic, watermill.NewStdLogger(false, false))
		publisher = bus
		c.ConsumerService = service.NewConsumerService(bus, sysLogger)
		c.closers = append(c.closers, func() { _ = bus.Close() })
	}

	// 3. LLM Provider. A missing credential disables the assistant, not auth.
	var provider llm.LLMProvider
	baseURL := cfg.Ai.GeminiBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	provider, err = factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, baseURL, cfg.Keys.GoogleGemini)
	switch {
	case errors.Is(err, factory.ErrMissingAPIKey):
		sysLogger.Warn("BOOT", "GEMINI_API_KEY not set, assistant runs on fallback answers only", nil)
		provider = nil
	case err != nil:
		return nil, fmt.Errorf("init LLM provider: %w", err)
	default:
		sysLogger.Info("BOOT", "LLM provider ready", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"model":    cfg.Ai.LLMModel,
		})
	}

	// 4. Services
	assistantService := service.NewAssistantService(
		provider,
		implementation.NewResponseCacheRepository(cacheStore),
		fallback.NewDefaultSelector(),
		cfg.Ai.RequestDelay,
		publisher,
		sysLogger,
	)
	authService := service.NewAuthService(
		implementation.NewUserRepository(userStore),
		memory.NewSessionRepository(cfg.Auth.SessionTTL),
		cfg.Auth.SessionTTL,
		bcrypt.DefaultCost,
		publisher,
		sysLogger,
	)

	// 5. Controllers
	c.AssistantController = controller.NewAssistantController(assistantService, cfg.App.ExposeErrorDetails)
	c.AuthController = controller.NewAuthController(authService)

	return c, nil
}

// Start runs background services until ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	if c.ConsumerService == nil {
		return nil
	}
	return c.ConsumerService.Consume(ctx)
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
