package server

import (
	"log"

	"travelorbit-be/internal/bootstrap"
	"travelorbit-be/internal/config"
	"travelorbit-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	// Public surface: signup/login, OAuth, browsable deals, invite-code
	// group voting, and the channel/payment webhooks.
	c.AuthController.RegisterRoutes(api)
	c.OAuthController.RegisterRoutes(api)
	c.DealController.RegisterPublicRoutes(api)
	c.GroupController.RegisterPublicRoutes(api)
	c.ChatController.RegisterWebhookRoutes(api)
	c.PaymentController.RegisterWebhookRoutes(api)

	// Everything past this point needs a bearer token.
	authed := api.Group("", serverutils.JwtMiddleware)
	c.UserController.RegisterRoutes(authed)
	c.ChatController.RegisterRoutes(authed)
	c.TripController.RegisterRoutes(authed)
	c.GroupController.RegisterRoutes(authed)
	c.DealController.RegisterRoutes(authed)
	c.PaymentController.RegisterRoutes(authed)

	// WebSocket auth happens in the handler from the query token.
	c.NotificationHandler.RegisterRoutes(api)
}
