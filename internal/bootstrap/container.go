package bootstrap

import (
	"context"
	"io"
	"log"
	"os"

	"agentcity-be/internal/config"
	"agentcity-be/internal/controller"
	"agentcity-be/internal/handler"
	"agentcity-be/internal/pkg/logger"
	"agentcity-be/internal/pkg/mailer"
	"agentcity-be/internal/repository/memory"
	"agentcity-be/internal/repository/unitofwork"
	"agentcity-be/internal/service"
	"agentcity-be/internal/websocket"
	"agentcity-be/pkg/llm/factory"

	pktNats "agentcity-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	OAuthController    controller.IOAuthController
	DispatchController controller.IDispatchController
	PlanController     controller.IPlanController

	// Background Services (Exposed for main.go to run)
	NotificationService service.INotificationService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Gateway
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Dedicated file log for every gateway round-trip.
	llmLogger := newLLMLogger(cfg.Ai.LLMLogPath)

	// In-memory clarification state, expiring on its own.
	conversationRepo := memory.NewConversationStateRepository()

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Dispatch.ArchivalTopic, pubSub)
	notificationService := service.NewNotificationService(
		pubSub,
		cfg.Dispatch.ArchivalTopic,
		uowFactory,
		wsHub,
		emailService,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory, cfg.OAuth)

	dispatcherService := service.NewDispatcherService(
		uowFactory,
		conversationRepo,
		llmProvider,
		llmLogger,
		cfg.Dispatch.MinMatchingRecords,
		publisherService,
		natsPub,
		sysLogger,
	)
	planService := service.NewPlanService(uowFactory)

	// Domain event audit trail
	if natsSub != nil {
		eventMonitor := service.NewEventMonitorService(natsSub, sysLogger)
		if err := eventMonitor.Start(); err != nil {
			log.Printf("[WARN] Failed to start event monitor: %v", err)
		}
	}

	// Handler
	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		AuthController:      controller.NewAuthController(authService),
		OAuthController:     controller.NewOAuthController(oauthService),
		DispatchController:  controller.NewDispatchController(dispatcherService),
		PlanController:      controller.NewPlanController(planService),

		NotificationService: notificationService,
	}
}

func newLLMLogger(path string) *log.Logger {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("[WARN] Failed to open LLM log file %s: %v", path, err)
		return log.New(io.Discard, "", 0)
	}
	return log.New(file, "", log.LstdFlags)
}
