package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trip-planner-be/internal/dto"
	"trip-planner-be/internal/pkg/logger"
	"trip-planner-be/internal/pkg/serverutils"
	"trip-planner-be/internal/repository/memory"
	"trip-planner-be/internal/service"
	"trip-planner-be/pkg/itinerary"
	"trip-planner-be/pkg/itinerary/itinerarytest"
	"trip-planner-be/pkg/planner"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	err error
}

func (g *stubGenerator) Generate(ctx context.Context, request string) (*itinerary.Document, error) {
	if g.err != nil {
		return nil, g.err
	}
	return itinerarytest.Lisbon(), nil
}

func newTestApp(gen service.ItineraryGenerator) *fiber.App {
	svc := service.NewPlannerService(gen, memory.NewSessionRepository(time.Minute), nil, logger.NewNopLogger(), 0)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewPlannerController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, serverutils.BaseResponse[dto.SessionResponse]) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out serverutils.BaseResponse[dto.SessionResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func createSession(t *testing.T, app *fiber.App) uuid.UUID {
	t.Helper()
	code, res := doJSON(t, app, "POST", "/api/planner/v1/itineraries", `{"prompt":"3 days in Lisbon"}`)
	require.Equal(t, fiber.StatusOK, code)
	require.True(t, res.Success)
	return res.Data.Id
}

func TestPlannerController_CreateItinerary(t *testing.T) {
	app := newTestApp(&stubGenerator{})

	code, res := doJSON(t, app, "POST", "/api/planner/v1/itineraries", `{"prompt":"3 days in Lisbon"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, res.Success)
	assert.Equal(t, "Success create itinerary", res.Message)
	assert.Equal(t, "3 Days in Lisbon", res.Data.Itinerary.Title)
	assert.Equal(t, 210.0, res.Data.Selection.BaseCost)
	assert.Equal(t, 800.0, res.Data.Selection.DerivedTotal)
}

func TestPlannerController_CreateItinerary_Errors(t *testing.T) {
	tests := []struct {
		name     string
		gen      *stubGenerator
		body     string
		wantCode int
	}{
		{"missing prompt", &stubGenerator{}, `{}`, fiber.StatusBadRequest},
		{"blank prompt", &stubGenerator{}, `{"prompt":"   "}`, fiber.StatusBadRequest},
		{"malformed body", &stubGenerator{}, `{"prompt":`, fiber.StatusBadRequest},
		{"parse failure", &stubGenerator{err: &planner.GenerationError{Kind: planner.ErrParse}}, `{"prompt":"Lisbon"}`, fiber.StatusUnprocessableEntity},
		{"empty result", &stubGenerator{err: &planner.GenerationError{Kind: planner.ErrEmptyResult}}, `{"prompt":"Lisbon"}`, fiber.StatusUnprocessableEntity},
		{"service failure", &stubGenerator{err: &planner.GenerationError{Kind: planner.ErrService, Err: errors.New("503")}}, `{"prompt":"Lisbon"}`, fiber.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.gen)
			code, res := doJSON(t, app, "POST", "/api/planner/v1/itineraries", tt.body)
			assert.Equal(t, tt.wantCode, code)
			assert.False(t, res.Success)
			assert.Equal(t, tt.wantCode, res.Code)
			assert.NotEmpty(t, res.Message)
		})
	}
}

func TestPlannerController_SelectionFlow(t *testing.T) {
	app := newTestApp(&stubGenerator{})
	id := createSession(t, app)
	base := "/api/planner/v1/sessions/" + id.String()

	code, res := doJSON(t, app, "PUT", base+"/accommodation", `{"location":"Lisbon","index":1}`)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 840.0, res.Data.Selection.DerivedTotal)

	code, res = doJSON(t, app, "PUT", base+"/transport", `{"mode":"flight","direction":"outbound","index":1}`)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 855.0, res.Data.Selection.DerivedTotal)

	code, res = doJSON(t, app, "GET", base, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 855.0, res.Data.Selection.DerivedTotal)
	assert.Equal(t, 210.0, res.Data.Selection.BaseCost)

	code, res = doJSON(t, app, "POST", base+"/regenerate", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 800.0, res.Data.Selection.DerivedTotal)

	code, res = doJSON(t, app, "POST", base+"/reset", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.False(t, res.Data.Selection.Seeded)
	assert.Nil(t, res.Data.Itinerary)

	code, _ = doJSON(t, app, "DELETE", base, "")
	require.Equal(t, fiber.StatusOK, code)

	code, _ = doJSON(t, app, "GET", base, "")
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestPlannerController_SelectionErrors(t *testing.T) {
	app := newTestApp(&stubGenerator{})
	id := createSession(t, app)
	base := "/api/planner/v1/sessions/" + id.String()

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
	}{
		{"unknown mode", "PUT", base + "/transport", `{"mode":"boat","direction":"outbound","index":0}`, fiber.StatusBadRequest},
		{"missing index", "PUT", base + "/transport", `{"mode":"flight","direction":"outbound"}`, fiber.StatusBadRequest},
		{"negative index", "PUT", base + "/accommodation", `{"location":"Lisbon","index":-1}`, fiber.StatusBadRequest},
		{"index out of range", "PUT", base + "/accommodation", `{"location":"Lisbon","index":5}`, fiber.StatusBadRequest},
		{"mode not in plan", "PUT", base + "/transport", `{"mode":"railway","direction":"inbound","index":0}`, fiber.StatusBadRequest},
		{"unknown session", "GET", "/api/planner/v1/sessions/" + uuid.NewString(), "", fiber.StatusNotFound},
		{"malformed session id", "GET", "/api/planner/v1/sessions/not-a-uuid", "", fiber.StatusNotFound},
		{"delete unknown session", "DELETE", "/api/planner/v1/sessions/" + uuid.NewString(), "", fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, res := doJSON(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, code)
			assert.False(t, res.Success)
		})
	}
}
