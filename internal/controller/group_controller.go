package controller

import (
	"errors"

	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/pkg/serverutils"
	"travelorbit-be/internal/service"
	"travelorbit-be/pkg/consensus"

	"github.com/gofiber/fiber/v2"
)

type IGroupController interface {
	RegisterRoutes(r fiber.Router)
	RegisterPublicRoutes(r fiber.Router)
}

type groupController struct {
	service service.IGroupService
}

func NewGroupController(service service.IGroupService) IGroupController {
	return &groupController{service: service}
}

func (c *groupController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/groups")
	h.Post("/", c.Create)
	h.Post("/:code/convert", c.Convert)
}

// RegisterPublicRoutes mounts the join/vote surface, reachable through an
// invite code without an account.
func (c *groupController) RegisterPublicRoutes(r fiber.Router) {
	h := r.Group("/groups")
	h.Post("/join", c.Join)
	h.Get("/:code", c.Status)
	h.Post("/:code/vote", c.Vote)
}

func (c *groupController) Create(ctx *fiber.Ctx) error {
	userId, email, err := serverutils.UserFromLocals(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}

	var req dto.CreateGroupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Create(ctx.Context(), userId, email, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Group created. Share the code with your travel buddies!", res))
}

func (c *groupController) Join(ctx *fiber.Ctx) error {
	var req dto.JoinGroupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Join(ctx.Context(), &req)
	if err != nil {
		return c.groupError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Joined group", res))
}

func (c *groupController) Status(ctx *fiber.Ctx) error {
	res, err := c.service.Status(ctx.Context(), ctx.Params("code"))
	if err != nil {
		return c.groupError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Group status", res))
}

func (c *groupController) Vote(ctx *fiber.Ctx) error {
	var req dto.SubmitVoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.SubmitVote(ctx.Context(), ctx.Params("code"), &req)
	if err != nil {
		return c.groupError(ctx, err)
	}

	message := "Vote recorded"
	if res.Converted {
		message = "Vote recorded and the group trip is ready!"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *groupController) Convert(ctx *fiber.Ctx) error {
	userId, _, err := serverutils.UserFromLocals(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}

	res, err := c.service.Convert(ctx.Context(), userId, ctx.Params("code"))
	if err != nil {
		return c.groupError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Group trip created", res))
}

func (c *groupController) groupError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	case errors.Is(err, service.ErrNotGroupLeader):
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, err.Error()))
	case errors.Is(err, service.ErrGroupConverted), errors.Is(err, service.ErrInvalidGroupVote), errors.Is(err, consensus.ErrNoVotes):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
}
