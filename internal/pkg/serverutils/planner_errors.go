package serverutils

import (
	"errors"

	"trip-planner-be/internal/service"
	"trip-planner-be/pkg/planner"

	"github.com/gofiber/fiber/v2"
)

// PlannerError maps planner and session failures onto HTTP statuses with
// copy that is safe to show to end users. Unknown errors pass through.
func PlannerError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, planner.ErrEmptyRequest):
		return NewHTTPError(fiber.StatusBadRequest, planner.UserMessage(err), err)
	case errors.Is(err, service.ErrInvalidSelection):
		return NewHTTPError(fiber.StatusBadRequest, "Selection does not match any option", err)
	case errors.Is(err, service.ErrSessionNotFound):
		return NewHTTPError(fiber.StatusNotFound, "Session not found", err)
	case errors.Is(err, service.ErrGenerationInFlight):
		return NewHTTPError(fiber.StatusConflict, "An itinerary is already being generated for this session", err)
	case errors.Is(err, planner.ErrParse), errors.Is(err, planner.ErrEmptyResult):
		return NewHTTPError(fiber.StatusUnprocessableEntity, planner.UserMessage(err), err)
	case errors.Is(err, planner.ErrService):
		return NewHTTPError(fiber.StatusBadGateway, planner.UserMessage(err), err)
	}
	return err
}
