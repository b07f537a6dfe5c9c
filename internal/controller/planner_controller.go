package controller

import (
	"trip-planner-be/internal/dto"
	"trip-planner-be/internal/pkg/serverutils"
	"trip-planner-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPlannerController interface {
	RegisterRoutes(r fiber.Router)
	CreateItinerary(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	Regenerate(ctx *fiber.Ctx) error
	SelectTransport(ctx *fiber.Ctx) error
	SelectAccommodation(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type plannerController struct {
	service service.IPlannerService
}

func NewPlannerController(service service.IPlannerService) IPlannerController {
	return &plannerController{service: service}
}

func (c *plannerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/planner/v1")
	h.Post("/itineraries", c.CreateItinerary)
	h.Get("/sessions/:id", c.GetSession)
	h.Post("/sessions/:id/regenerate", c.Regenerate)
	h.Put("/sessions/:id/transport", c.SelectTransport)
	h.Put("/sessions/:id/accommodation", c.SelectAccommodation)
	h.Post("/sessions/:id/reset", c.ResetSession)
	h.Delete("/sessions/:id", c.DeleteSession)
}

func (c *plannerController) CreateItinerary(ctx *fiber.Ctx) error {
	var req dto.CreateItineraryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateItinerary(ctx.UserContext(), &req)
	if err != nil {
		return serverutils.PlannerError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create itinerary", res))
}

func (c *plannerController) GetSession(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetSession(ctx.UserContext(), id)
	if err != nil {
		return serverutils.PlannerError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *plannerController) Regenerate(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	var req dto.RegenerateRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Regenerate(ctx.UserContext(), id, &req)
	if err != nil {
		return serverutils.PlannerError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success regenerate itinerary", res))
}

func (c *plannerController) SelectTransport(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	var req dto.SelectTransportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SelectTransport(ctx.UserContext(), id, &req)
	if err != nil {
		return serverutils.PlannerError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success select transport", res))
}

func (c *plannerController) SelectAccommodation(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	var req dto.SelectAccommodationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SelectAccommodation(ctx.UserContext(), id, &req)
	if err != nil {
		return serverutils.PlannerError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success select accommodation", res))
}

func (c *plannerController) ResetSession(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ResetSession(ctx.UserContext(), id)
	if err != nil {
		return serverutils.PlannerError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset session", res))
}

func (c *plannerController) DeleteSession(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteSession(ctx.UserContext(), id); err != nil {
		return serverutils.PlannerError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

// sessionID treats a malformed id like an unknown one.
func sessionID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NewHTTPError(fiber.StatusNotFound, "Session not found", err)
	}
	return id, nil
}
