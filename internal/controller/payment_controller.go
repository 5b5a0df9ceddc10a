package controller

import (
	"errors"

	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/pkg/serverutils"
	"travelorbit-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	RegisterWebhookRoutes(r fiber.Router)
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payments")
	h.Post("/checkout", c.Checkout)
	h.Post("/verify", c.Verify)
}

// RegisterWebhookRoutes mounts the midtrans notification endpoint. It is
// unauthenticated; the payload is trusted via its signature key.
func (c *paymentController) RegisterWebhookRoutes(r fiber.Router) {
	r.Post("/webhook/midtrans", c.MidtransNotification)
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	userId, _, err := serverutils.UserFromLocals(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}

	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Checkout(ctx.Context(), userId, &req)
	if err != nil {
		return c.paymentError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *paymentController) Verify(ctx *fiber.Ctx) error {
	userId, _, err := serverutils.UserFromLocals(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}

	var req dto.VerifyPaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Verify(ctx.Context(), userId, &req)
	if err != nil {
		return c.paymentError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment confirmed. Your trip is booked!", res))
}

func (c *paymentController) MidtransNotification(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.HandleMidtransNotification(ctx.Context(), &req); err != nil {
		// Midtrans retries on non-2xx. Reject only what a retry could fix.
		if errors.Is(err, service.ErrPaymentRejected) {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", nil))
}

func (c *paymentController) paymentError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTripNotFound), errors.Is(err, service.ErrPaymentNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	case errors.Is(err, service.ErrTripNotPayable), errors.Is(err, service.ErrAlreadyPaid):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	case errors.Is(err, service.ErrPaymentRejected):
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, err.Error()))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
}
