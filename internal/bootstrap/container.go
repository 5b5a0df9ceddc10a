package bootstrap

import (
	"context"
	"log"

	"travelorbit-be/internal/config"
	"travelorbit-be/internal/controller"
	"travelorbit-be/internal/handler"
	"travelorbit-be/internal/pkg/logger"
	"travelorbit-be/internal/pkg/mailer"
	"travelorbit-be/internal/repository/memory"
	"travelorbit-be/internal/repository/unitofwork"
	"travelorbit-be/internal/service"
	"travelorbit-be/internal/websocket"
	"travelorbit-be/pkg/embedding"
	"travelorbit-be/pkg/embedding/jina"
	"travelorbit-be/pkg/llm/factory"
	"travelorbit-be/pkg/messaging"
	"travelorbit-be/pkg/payment"
	"travelorbit-be/pkg/travelcal"

	pktNats "travelorbit-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	OAuthController   controller.IOAuthController
	UserController    controller.IUserController
	ChatController    controller.IChatController
	TripController    controller.ITripController
	GroupController   controller.IGroupController
	DealController    controller.IDealController
	PaymentController controller.IPaymentController

	// Background services, exposed for main.go to run
	ConsumerService service.IConsumerService
	DealService     service.IDealService
	FeedbackService service.IFeedbackService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	var smsSender messaging.ISender
	if cfg.Twilio.AccountSID != "" && cfg.Twilio.AuthToken != "" {
		smsSender = messaging.NewTwilioSender(
			cfg.Twilio.AccountSID,
			cfg.Twilio.AuthToken,
			cfg.Twilio.SMSNumber,
			cfg.Twilio.WhatsAppNumber,
		)
	} else {
		smsSender = messaging.NewNoopSender()
		log.Println("[WARN] Twilio credentials missing, SMS/WhatsApp delivery disabled")
	}

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = jina.NewJinaProvider(cfg.Ai.JinaAPIKey)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	}

	llmBaseURL := cfg.Ai.OpenRouterBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.OpenRouterAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Payment gateway
	gateway, err := payment.NewGateway(
		cfg.Payment.Provider,
		cfg.Payment.RazorpayKeyID,
		cfg.Payment.RazorpayKeySecret,
		cfg.Payment.MidtransServerKey,
		cfg.Payment.MidtransIsProduction,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize payment gateway: %v", err)
	}
	log.Printf("[INFO] Using Payment Gateway: %s", gateway.Name())

	// In-memory webhook session cache
	sessionRepo := memory.NewSessionRepository()

	// 5. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

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

	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 6. Services
	authService := service.NewAuthService(uowFactory, emailService, smsSender, cfg)
	oauthService := service.NewOAuthService(uowFactory, authService, cfg, sysLogger)
	userService := service.NewUserService(uowFactory)

	calendarClient := travelcal.NewGoogleCalendarClient(oauthService.GoogleConfig())

	plannerService := service.NewPlannerService(uowFactory, llmProvider, natsPub, sessionRepo, sysLogger, cfg)
	tripService := service.NewTripService(uowFactory, calendarClient)
	feedbackService := service.NewFeedbackService(uowFactory, emailService, sysLogger)
	groupService := service.NewGroupService(uowFactory, natsPub, sysLogger)
	dealService := service.NewDealService(uowFactory, llmProvider, embeddingProvider, natsPub, sysLogger, cfg)
	paymentService := service.NewPaymentService(uowFactory, gateway, natsPub, pubSub, sysLogger)

	consumerService := service.NewConsumerService(
		pubSub,
		service.BookingTopic,
		uowFactory,
		emailService,
		smsSender,
	)

	// 7. Notification worker
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(notifService, wsHub, cfg.JWT.Secret, wsLogger)

	return &Container{
		AuthController:    controller.NewAuthController(authService),
		OAuthController:   controller.NewOAuthController(oauthService),
		UserController:    controller.NewUserController(userService),
		ChatController:    controller.NewChatController(plannerService),
		TripController:    controller.NewTripController(tripService, feedbackService),
		GroupController:   controller.NewGroupController(groupService),
		DealController:    controller.NewDealController(dealService),
		PaymentController: controller.NewPaymentController(paymentService),

		ConsumerService: consumerService,
		DealService:     dealService,
		FeedbackService: feedbackService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
