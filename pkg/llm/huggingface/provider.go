package huggingface

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

type HuggingFaceProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// Ensure HuggingFaceProvider implements LLMProvider
var _ llm.LLMProvider = &HuggingFaceProvider{}

// Request Payload Structure (OpenAI Compatible)
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
	Tools          []chatTool      `json:"tools,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

type chatTool struct {
	Type     string `json:"type"`
	Function struct {
		Name        string      `json:"name"`
		Description string      `json:"description,omitempty"`
		Parameters  *llm.Schema `json:"parameters,omitempty"`
	} `json:"function"`
}

type chatToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name string `json:"name"`
		// Arguments is a JSON document encoded as a string.
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type responseFormat struct {
	Type       string `json:"type"`
	JSONSchema struct {
		Name   string      `json:"name"`
		Schema *llm.Schema `json:"schema"`
	} `json:"json_schema"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string         `json:"content"`
			ToolCalls []chatToolCall `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewHuggingFaceProvider(apiKey, baseURL, model string, timeout time.Duration) *HuggingFaceProvider {
	if baseURL == "" {
		baseURL = "https://router.huggingface.co/v1" // Default Router URL
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HuggingFaceProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HuggingFaceProvider) Complete(ctx context.Context, req llm.CompletionRequest, options ...llm.Option) (*llm.Completion, error) {
	opts := llm.ApplyOptions(llm.Options{Model: p.model, Temperature: -1}, options...)

	messages, err := toMessages(req)
	if err != nil {
		return nil, err
	}
	reqBody := chatRequest{
		Model:     opts.Model,
		Messages:  messages,
		MaxTokens: opts.MaxTokens,
	}
	if opts.Temperature >= 0 {
		reqBody.Temperature = &opts.Temperature
	}
	for _, t := range req.Tools {
		var tool chatTool
		tool.Type = "function"
		tool.Function.Name = t.Name
		tool.Function.Description = t.Description
		tool.Function.Parameters = t.Parameters
		reqBody.Tools = append(reqBody.Tools, tool)
	}
	if req.ResponseSchema != nil {
		rf := &responseFormat{Type: "json_schema"}
		rf.JSONSchema.Name = "response"
		rf.JSONSchema.Schema = req.ResponseSchema
		reqBody.ResponseFormat = rf
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &llm.APIError{Provider: "huggingface", StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("huggingface api returned error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("empty choices from huggingface api")
	}

	choice := chatResp.Choices[0]
	out := &llm.Completion{Text: choice.Message.Content, FinishReason: choice.FinishReason}
	for _, tc := range choice.Message.ToolCalls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return nil, fmt.Errorf("decode arguments of %s: %w", tc.Function.Name, err)
			}
		}
		out.ToolCalls = append(out.ToolCalls, llm.ToolCall{ID: tc.ID, Name: tc.Function.Name, Args: args})
	}
	return out, nil
}

func toMessages(req llm.CompletionRequest) ([]chatMessage, error) {
	msgs := make([]chatMessage, 0, len(req.History)+1)
	if req.SystemInstruction != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.SystemInstruction})
	}
	for _, m := range req.History {
		switch m.Role {
		case llm.RoleModel:
			out := chatMessage{Role: "assistant", Content: m.Content}
			for _, c := range m.ToolCalls {
				args, err := json.Marshal(c.Args)
				if err != nil {
					return nil, fmt.Errorf("encode arguments of %s: %w", c.Name, err)
				}
				var tc chatToolCall
				tc.ID = c.ID
				tc.Type = "function"
				tc.Function.Name = c.Name
				tc.Function.Arguments = string(args)
				out.ToolCalls = append(out.ToolCalls, tc)
			}
			msgs = append(msgs, out)
		case llm.RoleTool:
			for _, r := range m.ToolResults {
				body, err := json.Marshal(r.Response)
				if err != nil {
					return nil, fmt.Errorf("encode result of %s: %w", r.Name, err)
				}
				msgs = append(msgs, chatMessage{Role: "tool", Content: string(body), ToolCallID: r.CallID})
			}
		default:
			msgs = append(msgs, chatMessage{Role: "user", Content: m.Content})
		}
	}
	return msgs, nil
}
