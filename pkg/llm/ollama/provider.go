package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"trip-planner-be/pkg/llm"
)

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

// Ensure OllamaProvider implements LLMProvider
var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string, timeout time.Duration) *OllamaProvider {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Tools    []ollamaTool    `json:"tools,omitempty"`
	Format   *llm.Schema     `json:"format,omitempty"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	ToolCalls []ollamaToolCall `json:"tool_calls,omitempty"`
	ToolName  string           `json:"tool_name,omitempty"`
}

type ollamaTool struct {
	Type     string         `json:"type"`
	Function ollamaFunction `json:"function"`
}

type ollamaFunction struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Parameters  *llm.Schema `json:"parameters,omitempty"`
}

type ollamaToolCall struct {
	Function struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	} `json:"function"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model      string        `json:"model"`
	Message    ollamaMessage `json:"message"`
	Done       bool          `json:"done"`
	DoneReason string        `json:"done_reason"`
}

// --- Interface Implementation ---

func (o *OllamaProvider) Complete(ctx context.Context, req llm.CompletionRequest, opts ...llm.Option) (*llm.Completion, error) {
	// 1. Process Options
	options := llm.ApplyOptions(llm.Options{
		Temperature: 0.7, // Default
		Model:       o.ModelName,
	}, opts...)

	// 2. Prepare Payload
	reqPayload := ollamaChatRequest{
		Model:    options.Model,
		Messages: toMessages(req),
		Stream:   false,
		Format:   req.ResponseSchema,
		Options: &ollamaOptions{
			Temperature: options.Temperature,
			NumPredict:  options.MaxTokens,
		},
	}
	for _, t := range req.Tools {
		reqPayload.Tools = append(reqPayload.Tools, ollamaTool{
			Type:     "function",
			Function: ollamaFunction{Name: t.Name, Description: t.Description, Parameters: t.Parameters},
		})
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	// 3. Send Request
	url := o.BaseURL + "/api/chat"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &llm.APIError{Provider: "ollama", StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	// 4. Parse Response
	var ollamaResp ollamaChatResponse
	if err := json.Unmarshal(bodyBytes, &ollamaResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	out := &llm.Completion{
		Text:         ollamaResp.Message.Content,
		FinishReason: ollamaResp.DoneReason,
	}
	for i, tc := range ollamaResp.Message.ToolCalls {
		// Ollama does not issue call ids; positional ids keep results paired.
		out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
			ID:   fmt.Sprintf("call_%d", i),
			Name: tc.Function.Name,
			Args: tc.Function.Arguments,
		})
	}
	return out, nil
}

func toMessages(req llm.CompletionRequest) []ollamaMessage {
	msgs := make([]ollamaMessage, 0, len(req.History)+1)
	if req.SystemInstruction != "" {
		msgs = append(msgs, ollamaMessage{Role: "system", Content: req.SystemInstruction})
	}
	for _, msg := range req.History {
		switch msg.Role {
		case llm.RoleModel:
			m := ollamaMessage{Role: "assistant", Content: msg.Content}
			for _, c := range msg.ToolCalls {
				var tc ollamaToolCall
				tc.Function.Name = c.Name
				tc.Function.Arguments = c.Args
				m.ToolCalls = append(m.ToolCalls, tc)
			}
			msgs = append(msgs, m)
		case llm.RoleTool:
			// One tool message per result, in call order.
			for _, r := range msg.ToolResults {
				body, _ := json.Marshal(r.Response)
				msgs = append(msgs, ollamaMessage{Role: "tool", Content: string(body), ToolName: r.Name})
			}
		default:
			msgs = append(msgs, ollamaMessage{Role: "user", Content: msg.Content})
		}
	}
	return msgs
}
