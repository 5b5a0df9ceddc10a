package controller

import (
	"errors"

	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/pkg/serverutils"
	"travelorbit-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDealController interface {
	RegisterRoutes(r fiber.Router)
	RegisterPublicRoutes(r fiber.Router)
}

type dealController struct {
	service service.IDealService
}

func NewDealController(service service.IDealService) IDealController {
	return &dealController{service: service}
}

func (c *dealController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/deals")
	h.Post("/:dealId/book", c.Book)
}

func (c *dealController) RegisterPublicRoutes(r fiber.Router) {
	h := r.Group("/deals")
	h.Get("/", c.List)
	h.Post("/recommend", c.Recommend)
}

func (c *dealController) List(ctx *fiber.Ctx) error {
	res, err := c.service.ListToday(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Today's deals", res))
}

func (c *dealController) Recommend(ctx *fiber.Ctx) error {
	var req dto.DealRecommendationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Recommend(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Recommended deals", res))
}

func (c *dealController) Book(ctx *fiber.Ctx) error {
	userId, email, err := serverutils.UserFromLocals(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}

	dealId, err := uuid.Parse(ctx.Params("dealId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid deal id"))
	}

	var req dto.BookDealRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Book(ctx.Context(), userId, email, dealId, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDealNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		case errors.Is(err, service.ErrDealExpired), errors.Is(err, service.ErrDealCapacity):
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
		}
	}
	return ctx.JSON(serverutils.SuccessResponse("Deal booked. Continue to payment when ready.", res))
}
