package serverutils

import (
	"errors"
	"fmt"
	"testing"

	"trip-planner-be/internal/service"
	"trip-planner-be/pkg/planner"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannerError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"empty request", &planner.GenerationError{Kind: planner.ErrEmptyRequest}, fiber.StatusBadRequest},
		{"invalid selection", service.ErrInvalidSelection, fiber.StatusBadRequest},
		{"unknown session", fmt.Errorf("lookup: %w", service.ErrSessionNotFound), fiber.StatusNotFound},
		{"in flight", service.ErrGenerationInFlight, fiber.StatusConflict},
		{"parse", &planner.GenerationError{Kind: planner.ErrParse, Phase: planner.PhaseParse}, fiber.StatusUnprocessableEntity},
		{"empty result", &planner.GenerationError{Kind: planner.ErrEmptyResult, Phase: planner.PhaseParse}, fiber.StatusUnprocessableEntity},
		{"service", &planner.GenerationError{Kind: planner.ErrService, Phase: planner.PhaseDraft, Err: errors.New("503")}, fiber.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *HTTPError
			require.True(t, errors.As(PlannerError(tt.err), &httpErr))
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.NotEmpty(t, httpErr.Message)
			assert.NotContains(t, httpErr.Message, "503")
		})
	}

	plain := errors.New("boom")
	assert.Same(t, plain, PlannerError(plain))
	assert.NoError(t, PlannerError(nil))
}
