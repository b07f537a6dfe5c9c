package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trip-planner-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_Complete(t *testing.T) {
	var captured ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "llama3.1",
			"message": {
				"role": "assistant",
				"content": "",
				"tool_calls": [{"function": {"name": "verify_flight_leg", "arguments": {"departure": "JFK", "proposedPrice": 150}}}]
			},
			"done": true,
			"done_reason": "stop"
		}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.1", time.Second)
	out, err := p.Complete(context.Background(), llm.CompletionRequest{
		SystemInstruction: "system rules",
		History: []llm.Message{
			{Role: llm.RoleUser, Content: "trip"},
			{Role: llm.RoleModel, ToolCalls: []llm.ToolCall{{ID: "a", Name: "verify_rail_leg"}}},
			{Role: llm.RoleTool, ToolResults: []llm.ToolResult{{CallID: "a", Name: "verify_rail_leg", Response: map[string]any{"status": "Verified"}}}},
		},
		Tools: []llm.ToolDeclaration{{Name: "verify_flight_leg", Parameters: llm.Object("", nil)}},
	}, llm.WithTemperature(0.2))
	require.NoError(t, err)

	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "assistant", captured.Messages[2].Role)
	assert.Equal(t, "tool", captured.Messages[3].Role)
	assert.JSONEq(t, `{"status":"Verified"}`, captured.Messages[3].Content)
	require.Len(t, captured.Tools, 1)
	assert.Equal(t, "function", captured.Tools[0].Type)
	assert.Nil(t, captured.Format)
	assert.InDelta(t, 0.2, captured.Options.Temperature, 0.0001)

	require.Len(t, out.ToolCalls, 1)
	assert.Equal(t, "verify_flight_leg", out.ToolCalls[0].Name)
	assert.Equal(t, "call_0", out.ToolCalls[0].ID)
	assert.Equal(t, float64(150), out.ToolCalls[0].Args["proposedPrice"])
	assert.Equal(t, "stop", out.FinishReason)
}

func TestOllamaProvider_SendsFormatForSchema(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"{\"itineraries\":[]}"},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.1", 0)
	out, err := p.Complete(context.Background(), llm.CompletionRequest{
		ResponseSchema: llm.Object("root", []llm.Property{llm.Prop("itineraries", llm.Array("", llm.Object("", nil)))}, "itineraries"),
	})
	require.NoError(t, err)

	format, ok := raw["format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", format["type"])
	assert.Equal(t, `{"itineraries":[]}`, out.Text)
}

func TestOllamaProvider_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("model loading"))
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "llama3.1", time.Second).Complete(context.Background(), llm.CompletionRequest{})
	require.Error(t, err)

	var apiErr *llm.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "model loading", apiErr.Body)
}
