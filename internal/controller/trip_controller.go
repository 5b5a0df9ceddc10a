package controller

import (
	"errors"

	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/pkg/serverutils"
	"travelorbit-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITripController interface {
	RegisterRoutes(r fiber.Router)
}

type tripController struct {
	service  service.ITripService
	feedback service.IFeedbackService
}

func NewTripController(service service.ITripService, feedback service.IFeedbackService) ITripController {
	return &tripController{service: service, feedback: feedback}
}

func (c *tripController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/trips")
	h.Get("/", c.List)
	h.Get("/:tripId", c.Show)
	h.Post("/:tripId/cancel", c.Cancel)
	h.Patch("/:tripId/contact", c.UpdateContact)
	h.Get("/:tripId/pricing", c.Pricing)
	h.Get("/:tripId/pdf", c.DownloadPDF)
	h.Get("/:tripId/calendar.ics", c.CalendarExport)
	h.Post("/:tripId/calendar", c.AddToCalendar)
	h.Post("/:tripId/feedback", c.SubmitFeedback)
}

func (c *tripController) List(ctx *fiber.Ctx) error {
	userId, _, err := serverutils.UserFromLocals(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.List(ctx.Context(), userId, limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Trips fetched", res))
}

func (c *tripController) Show(ctx *fiber.Ctx) error {
	userId, tripId, err := c.ownedTrip(ctx)
	if err != nil {
		return c.tripError(ctx, err)
	}

	res, err := c.service.Get(ctx.Context(), userId, tripId)
	if err != nil {
		return c.tripError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Trip fetched", res))
}

func (c *tripController) Cancel(ctx *fiber.Ctx) error {
	userId, tripId, err := c.ownedTrip(ctx)
	if err != nil {
		return c.tripError(ctx, err)
	}

	if err := c.service.Cancel(ctx.Context(), userId, tripId); err != nil {
		return c.tripError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Trip cancelled", nil))
}

func (c *tripController) UpdateContact(ctx *fiber.Ctx) error {
	userId, tripId, err := c.ownedTrip(ctx)
	if err != nil {
		return c.tripError(ctx, err)
	}

	var req dto.UpdateTripContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.UpdateContact(ctx.Context(), userId, tripId, &req)
	if err != nil {
		return c.tripError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Traveller details updated", res))
}

func (c *tripController) Pricing(ctx *fiber.Ctx) error {
	userId, tripId, err := c.ownedTrip(ctx)
	if err != nil {
		return c.tripError(ctx, err)
	}

	res, err := c.service.Pricing(ctx.Context(), userId, tripId)
	if err != nil {
		return c.tripError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Pricing calculated", res))
}

func (c *tripController) DownloadPDF(ctx *fiber.Ctx) error {
	userId, tripId, err := c.ownedTrip(ctx)
	if err != nil {
		return c.tripError(ctx, err)
	}

	pdfBytes, filename, err := c.service.BookingPDF(ctx.Context(), userId, tripId)
	if err != nil {
		return c.tripError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Send(pdfBytes)
}

func (c *tripController) CalendarExport(ctx *fiber.Ctx) error {
	userId, tripId, err := c.ownedTrip(ctx)
	if err != nil {
		return c.tripError(ctx, err)
	}

	icsBytes, err := c.service.CalendarExport(ctx.Context(), userId, tripId)
	if err != nil {
		return c.tripError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, "text/calendar")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="itinerary.ics"`)
	return ctx.Send(icsBytes)
}

func (c *tripController) AddToCalendar(ctx *fiber.Ctx) error {
	userId, tripId, err := c.ownedTrip(ctx)
	if err != nil {
		return c.tripError(ctx, err)
	}

	var req struct {
		AccessToken string `json:"access_token"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if req.AccessToken == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "missing google access token"))
	}

	eventId, err := c.service.AddToGoogleCalendar(ctx.Context(), userId, tripId, req.AccessToken)
	if err != nil {
		return c.tripError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Added to Google Calendar", fiber.Map{"event_id": eventId}))
}

func (c *tripController) SubmitFeedback(ctx *fiber.Ctx) error {
	userId, tripId, err := c.ownedTrip(ctx)
	if err != nil {
		return c.tripError(ctx, err)
	}

	var req dto.SubmitFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.feedback.Submit(ctx.Context(), userId, tripId, &req)
	if err != nil {
		return c.tripError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Feedback saved", res))
}

var errBadTripId = errors.New("invalid trip id")

func (c *tripController) ownedTrip(ctx *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userId, _, err := serverutils.UserFromLocals(ctx)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	tripId, err := uuid.Parse(ctx.Params("tripId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errBadTripId
	}
	return userId, tripId, nil
}

func (c *tripController) tripError(ctx *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(serverutils.ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	switch {
	case errors.Is(err, errBadTripId):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	case errors.Is(err, service.ErrTripNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	case errors.Is(err, service.ErrTripNotBooked), errors.Is(err, service.ErrTripNotOpen):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
}
