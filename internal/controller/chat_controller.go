package controller

import (
	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/pkg/serverutils"
	"travelorbit-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	RegisterWebhookRoutes(r fiber.Router)
}

type chatController struct {
	service service.IPlannerService
}

func NewChatController(service service.IPlannerService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("/", c.SendMessage)
	h.Get("/:tripId/history", c.History)
}

// RegisterWebhookRoutes mounts the unauthenticated channel entry point.
func (c *chatController) RegisterWebhookRoutes(r fiber.Router) {
	r.Post("/webhook/chat", c.Webhook)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId, email, err := serverutils.UserFromLocals(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.HandleMessage(ctx.Context(), userId, email, req.Message)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	userId, _, err := serverutils.UserFromLocals(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}

	tripId, err := uuid.Parse(ctx.Params("tripId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid trip id"))
	}

	res, err := c.service.GetHistory(ctx.Context(), userId, tripId)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("History fetched", res))
}

func (c *chatController) Webhook(ctx *fiber.Ctx) error {
	var req dto.WebhookChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.HandleWebhookMessage(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}
