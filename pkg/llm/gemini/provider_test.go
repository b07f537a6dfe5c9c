package gemini

import (
	"testing"

	"trip-planner-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToContents_MapsToolTurns(t *testing.T) {
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "plan a trip"},
		{Role: llm.RoleModel, Content: "checking", ToolCalls: []llm.ToolCall{{ID: "c1", Name: "verify_flight_leg", Args: map[string]any{"proposedPrice": 150.0}}}},
		{Role: llm.RoleTool, ToolResults: []llm.ToolResult{{CallID: "c1", Name: "verify_flight_leg", Response: map[string]any{"status": "Verified"}}}},
	}

	contents := toContents(history)
	require.Len(t, contents, 3)

	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "plan a trip", contents[0].Parts[0].Text)

	assert.Equal(t, "model", contents[1].Role)
	require.Len(t, contents[1].Parts, 2)
	assert.Equal(t, "verify_flight_leg", contents[1].Parts[1].FunctionCall.Name)

	assert.Equal(t, "user", contents[2].Role)
	require.NotNil(t, contents[2].Parts[0].FunctionResponse)
	assert.Equal(t, "c1", contents[2].Parts[0].FunctionResponse.ID)
	assert.Equal(t, "Verified", contents[2].Parts[0].FunctionResponse.Response["status"])
}

func TestToConfig(t *testing.T) {
	schema := llm.Object("root", []llm.Property{
		llm.Prop("title", llm.String("title")),
		llm.Prop("items", llm.Array("items", llm.Number("price"))),
	}, "title")

	t.Run("compile request", func(t *testing.T) {
		cfg := toConfig(llm.CompletionRequest{SystemInstruction: "be brief", ResponseSchema: schema},
			llm.ApplyOptions(llm.Options{Temperature: -1}, llm.WithThinkingBudget(8192)))

		assert.Equal(t, "application/json", cfg.ResponseMIMEType)
		require.NotNil(t, cfg.ResponseSchema)
		assert.Equal(t, genai.TypeObject, cfg.ResponseSchema.Type)
		assert.Equal(t, []string{"title", "items"}, cfg.ResponseSchema.PropertyOrdering)
		assert.Equal(t, genai.TypeNumber, cfg.ResponseSchema.Properties["items"].Items.Type)
		assert.Equal(t, "be brief", cfg.SystemInstruction.Parts[0].Text)
		assert.Nil(t, cfg.Temperature)
		require.NotNil(t, cfg.ThinkingConfig)
		assert.Equal(t, int32(8192), *cfg.ThinkingConfig.ThinkingBudget)
		assert.Empty(t, cfg.Tools)
	})

	t.Run("draft request", func(t *testing.T) {
		cfg := toConfig(llm.CompletionRequest{Tools: []llm.ToolDeclaration{{Name: "verify_rail_leg", Parameters: schema}}},
			llm.ApplyOptions(llm.Options{}, llm.WithTemperature(0.4)))

		require.Len(t, cfg.Tools, 1)
		assert.Equal(t, "verify_rail_leg", cfg.Tools[0].FunctionDeclarations[0].Name)
		assert.Empty(t, cfg.ResponseMIMEType)
		require.NotNil(t, cfg.Temperature)
		assert.InDelta(t, 0.4, *cfg.Temperature, 0.0001)
	})
}

func TestFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		FinishReason: genai.FinishReasonStop,
		Content: &genai.Content{Role: "model", Parts: []*genai.Part{
			{Text: "thinking...", Thought: true},
			{Text: `{"itineraries":`},
			{Text: `[]}`},
			{FunctionCall: &genai.FunctionCall{Name: "verify_flight_leg", Args: map[string]any{"departure": "LIS"}}},
		}},
	}}}

	out, err := fromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"itineraries":[]}`, out.Text)
	require.Len(t, out.ToolCalls, 1)
	assert.Equal(t, "LIS", out.ToolCalls[0].Args["departure"])
	assert.Equal(t, "STOP", out.FinishReason)

	_, err = fromResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)
}

func TestThoughtSignatureSurvivesToolRound(t *testing.T) {
	sig := []byte{0x0a, 0x1f, 0x42}
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Role: "model", Parts: []*genai.Part{
			{FunctionCall: &genai.FunctionCall{ID: "c1", Name: "verify_flight_leg", Args: map[string]any{"departure": "JFK"}}, ThoughtSignature: sig},
			{FunctionCall: &genai.FunctionCall{ID: "c2", Name: "verify_rail_leg"}},
		}},
	}}}

	out, err := fromResponse(resp)
	require.NoError(t, err)
	require.Len(t, out.ToolCalls, 2)
	assert.Equal(t, sig, out.ToolCalls[0].Signature)
	assert.Nil(t, out.ToolCalls[1].Signature)

	contents := toContents([]llm.Message{{Role: llm.RoleModel, ToolCalls: out.ToolCalls}})
	require.Len(t, contents, 1)
	require.Len(t, contents[0].Parts, 2)
	assert.Equal(t, sig, contents[0].Parts[0].ThoughtSignature)
	assert.Equal(t, "c1", contents[0].Parts[0].FunctionCall.ID)
	assert.Nil(t, contents[0].Parts[1].ThoughtSignature)
}
