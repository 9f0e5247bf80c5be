package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"dailymoji-be/internal/config"
	"dailymoji-be/internal/controller"
	"dailymoji-be/internal/pkg/logger"
	"dailymoji-be/internal/repository/implementation"
	"dailymoji-be/internal/repository/memory"
	"dailymoji-be/internal/service"
	"dailymoji-be/pkg/llm/factory"
	pktNats "dailymoji-be/pkg/nats"
	"dailymoji-be/pkg/srj5"
	"dailymoji-be/pkg/tokenizer"
	"dailymoji-be/pkg/tokenizer/kiwi"
)

// PersistTopic is the in-process topic carrying finished sessions to the
// persistence consumer.
const PersistTopic = "session.persist"

type Container struct {
	// Controllers
	CheckinController controller.ICheckinController

	// Background Services (Exposed for main.go to run)
	PersistService service.IPersistService

	Logger logger.ILogger
}

// NewContainer wires the full dependency graph. db may be nil: the service
// then runs analysis-only, without session persistence.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Scoring configuration (static tables, thresholds, lexicons)
	srjCfg := srj5.DefaultConfig()

	// LLM Provider based on Config. A failed provider init degrades to
	// rule-only fusion instead of killing the service.
	apiKey := cfg.Keys.OpenAI
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		apiKey,
	)
	if err != nil {
		log.Printf("[WARN] Failed to initialize LLM Provider, running rule-only: %v", err)
		llmProvider = nil
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// Tokenizer: external morpheme analyzer when configured, otherwise
	// the no-op (raw-text matching still works).
	var tok tokenizer.Tokenizer
	if cfg.Ai.TokenizerURL != "" {
		tok = kiwi.NewClient(cfg.Ai.TokenizerURL)
		log.Printf("[INFO] Using Tokenizer: kiwi (%s)", cfg.Ai.TokenizerURL)
	} else {
		tok = tokenizer.Noop{}
		log.Printf("[INFO] Using Tokenizer: noop")
	}

	// Safety detector
	var safety srj5.SafetyDetector
	switch cfg.Safety.Detector {
	case "regex":
		safety, err = srj5.NewRegexDetector(srjCfg)
	default:
		safety, err = srj5.NewMorphDetector(srjCfg, cfg.Safety.FailClosed)
	}
	if err != nil {
		log.Fatalf("[FATAL] Failed to compile safety patterns: %v", err)
	}

	// Signal cache
	var signalCache srj5.SignalCache
	if cfg.Ai.SignalCache == "redis" {
		opts, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Invalid REDIS_URL, falling back to in-memory signal cache: %v", err)
			signalCache = memory.NewSignalCache(cfg.Ai.SignalCacheTTL)
		} else {
			signalCache = memory.NewRedisSignalCache(redis.NewClient(opts), cfg.Ai.SignalCacheTTL)
			log.Printf("[INFO] Using Signal Cache: redis")
		}
	} else {
		signalCache = memory.NewSignalCache(cfg.Ai.SignalCacheTTL)
	}

	fuser := srj5.NewFuser(srjCfg, llmProvider, signalCache, sysLogger, cfg.Ai.ModelTimeout)
	engine := srj5.NewEngine(srjCfg, tok, safety, fuser, sysLogger)

	// NATS (crisis alerts). Optional: a dead broker only disables alerts.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Persistence path. Without a database the publish side is disabled
	// and no consumer runs.
	var persistService service.IPersistService
	persistPubSub := pubSub
	if db != nil {
		sessionRepo := implementation.NewSessionRepository(db)
		persistService = service.NewPersistService(pubSub, PersistTopic, sessionRepo, sysLogger)
	} else {
		log.Printf("[WARN] No database configured, sessions will not be persisted")
		persistPubSub = nil
	}

	checkinService := service.NewCheckinService(engine, persistPubSub, PersistTopic, natsPub, sysLogger)
	checkinController := controller.NewCheckinController(checkinService)

	return &Container{
		CheckinController: checkinController,
		PersistService:    persistService,
		Logger:            sysLogger,
	}
}
