package llm

import (
	"context"
	"fmt"
)

// Conversation roles shared by every provider. Providers translate these into
// their own vocabulary ("assistant", "function", ...).
const (
	RoleUser  = "user"
	RoleModel = "model"
	RoleTool  = "tool"
)

// Message represents one turn of a conversation in a provider-agnostic format.
// A model turn may carry tool calls; a tool turn carries the matching results.
type Message struct {
	Role        string
	Content     string
	ToolCalls   []ToolCall
	ToolResults []ToolResult
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
	// Signature is opaque provider state (Gemini thought signatures) that must
	// be sent back unchanged with the call on the next turn.
	Signature []byte
}

// ToolResult answers exactly one ToolCall.
type ToolResult struct {
	CallID   string
	Name     string
	Response map[string]any
}

// ToolDeclaration describes a function the model may call.
type ToolDeclaration struct {
	Name        string
	Description string
	Parameters  *Schema
}

// CompletionRequest is a single round-trip to the completion service.
type CompletionRequest struct {
	SystemInstruction string
	History           []Message
	Tools             []ToolDeclaration
	// ResponseSchema constrains the reply to JSON of this shape when set.
	ResponseSchema *Schema
}

// Completion is what came back from one round-trip.
type Completion struct {
	Text         string
	ToolCalls    []ToolCall
	FinishReason string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature    float64
	MaxTokens      int
	Model          string // Override default model
	ThinkingBudget int
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithThinkingBudget caps the reasoning tokens on providers that support it.
// Zero leaves the provider default in place.
func WithThinkingBudget(tokens int) Option {
	return func(o *Options) {
		o.ThinkingBudget = tokens
	}
}

// ApplyOptions folds opts over the provided defaults.
func ApplyOptions(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Complete sends the request and returns either text or pending tool calls.
	Complete(ctx context.Context, req CompletionRequest, options ...Option) (*Completion, error)
}

// APIError is returned when the backend answered with a non-success status.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s error: status %d, body: %s", e.Provider, e.StatusCode, e.Body)
}
