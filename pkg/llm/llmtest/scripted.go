// Package llmtest provides a scripted completion provider for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"trip-planner-be/pkg/llm"
)

// Step is one canned reply. If Err is set it is returned instead of Completion.
type Step struct {
	Completion llm.Completion
	Err        error
}

// Text is a Step that replies with plain text.
func Text(s string) Step {
	return Step{Completion: llm.Completion{Text: s, FinishReason: "STOP"}}
}

// Calls is a Step that replies with tool calls only.
func Calls(calls ...llm.ToolCall) Step {
	return Step{Completion: llm.Completion{ToolCalls: calls, FinishReason: "STOP"}}
}

// Fail is a Step that replies with err.
func Fail(err error) Step {
	return Step{Err: err}
}

// ScriptedProvider replays Steps in order and records every request it saw.
type ScriptedProvider struct {
	mu       sync.Mutex
	steps    []Step
	requests []llm.CompletionRequest
}

var _ llm.LLMProvider = (*ScriptedProvider)(nil)

func NewScriptedProvider(steps ...Step) *ScriptedProvider {
	return &ScriptedProvider{steps: steps}
}

func (s *ScriptedProvider) Complete(ctx context.Context, req llm.CompletionRequest, _ ...llm.Option) (*llm.Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Copy the history so later appends by the caller cannot rewrite what we recorded.
	req.History = append([]llm.Message(nil), req.History...)
	s.requests = append(s.requests, req)

	idx := len(s.requests) - 1
	if idx >= len(s.steps) {
		return nil, fmt.Errorf("llmtest: unexpected call #%d", idx+1)
	}
	step := s.steps[idx]
	if step.Err != nil {
		return nil, step.Err
	}
	out := step.Completion
	return &out, nil
}

// Requests returns the requests received so far.
func (s *ScriptedProvider) Requests() []llm.CompletionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]llm.CompletionRequest(nil), s.requests...)
}
