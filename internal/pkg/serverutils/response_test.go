package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Prompt string `json:"prompt" validate:"required,max=10"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Prompt: "Lisbon"}))

	err := ValidateRequest(sampleRequest{})
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, fiber.StatusBadRequest, httpErr.Code)
	assert.Equal(t, "Prompt is required", httpErr.Message)

	err = ValidateRequest(sampleRequest{Prompt: "a very long prompt"})
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "Prompt must satisfy max=10", httpErr.Message)
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"http error", NewHTTPError(fiber.StatusConflict, "busy", errors.New("in flight")), fiber.StatusConflict, "busy"},
		{"wrapped http error", errors.Join(errors.New("ctx"), NewHTTPError(fiber.StatusNotFound, "gone", nil)), fiber.StatusNotFound, "gone"},
		{"fiber error", fiber.NewError(fiber.StatusUnprocessableEntity, "bad body"), fiber.StatusUnprocessableEntity, "bad body"},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			var body BaseResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestSuccessResponse(t *testing.T) {
	res := SuccessResponse("ok", map[string]int{"n": 1})
	assert.True(t, res.Success)
	assert.Equal(t, fiber.StatusOK, res.Code)
	assert.Equal(t, 1, res.Data["n"])
}
