// Package planner drives the conversation that turns a trip request into an
// itinerary: draft, optional tool exchange, schema-constrained compile, parse.
package planner

import (
	"context"
	"strings"
	"time"

	"trip-planner-be/pkg/itinerary"
	"trip-planner-be/pkg/llm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "trip-planner-be/pkg/planner"

type Orchestrator struct {
	provider llm.LLMProvider
	tools    *ToolRegistry
	prompts  *InstructionBuilder
	schema   *llm.Schema
	callOpts []llm.Option
	tracer   trace.Tracer
}

type OrchestratorOption func(*Orchestrator)

// WithCompletionOptions applies opts to every completion call.
func WithCompletionOptions(opts ...llm.Option) OrchestratorOption {
	return func(o *Orchestrator) {
		o.callOpts = append(o.callOpts, opts...)
	}
}

// WithClock overrides the date injected into the system instruction.
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) {
		o.prompts = NewInstructionBuilder(now)
	}
}

func WithTracer(tracer trace.Tracer) OrchestratorOption {
	return func(o *Orchestrator) {
		o.tracer = tracer
	}
}

func NewOrchestrator(provider llm.LLMProvider, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		tools:    NewToolRegistry(),
		prompts:  NewInstructionBuilder(nil),
		schema:   itinerary.MasterSchema(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate runs one request to completion. There are no retries and no partial
// results: every failure is a *GenerationError and discards the attempt.
func (o *Orchestrator) Generate(ctx context.Context, request string) (*itinerary.Document, error) {
	ctx, span := o.tracer.Start(ctx, "planner.generate")
	defer span.End()

	doc, err := o.generate(ctx, request)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("itinerary.title", doc.Title))
	return doc, nil
}

func (o *Orchestrator) generate(ctx context.Context, request string) (*itinerary.Document, error) {
	request = strings.TrimSpace(request)
	if request == "" {
		return nil, &GenerationError{Kind: ErrEmptyRequest}
	}

	transcript := NewTranscript(llm.Message{Role: llm.RoleUser, Content: o.prompts.UserMessage(request)})

	draft, err := o.draft(ctx, transcript)
	if err != nil {
		return nil, err
	}

	transcript = o.exchangeTools(ctx, transcript, draft)

	raw, err := o.compile(ctx, transcript)
	if err != nil {
		return nil, err
	}

	return o.parse(ctx, raw, transcript)
}

func (o *Orchestrator) draft(ctx context.Context, transcript Transcript) (*llm.Completion, error) {
	ctx, span := o.tracer.Start(ctx, "planner.draft")
	defer span.End()

	out, err := o.provider.Complete(ctx, llm.CompletionRequest{
		SystemInstruction: o.prompts.SystemInstruction(),
		History:           transcript.Messages(),
		Tools:             o.tools.Declarations(),
	}, o.callOpts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return nil, serviceError(PhaseDraft, err)
	}
	span.SetAttributes(attribute.Int("tool_calls.pending", len(out.ToolCalls)))
	return out, nil
}

// exchangeTools resolves every pending call, in order, and appends the model
// turn followed by one turn carrying all results. A draft without calls is
// kept as context only.
func (o *Orchestrator) exchangeTools(ctx context.Context, transcript Transcript, draft *llm.Completion) Transcript {
	if len(draft.ToolCalls) == 0 {
		if strings.TrimSpace(draft.Text) == "" {
			return transcript
		}
		return transcript.Append(llm.Message{Role: llm.RoleModel, Content: draft.Text})
	}

	_, span := o.tracer.Start(ctx, "planner.tool_exchange")
	defer span.End()

	results := make([]llm.ToolResult, 0, len(draft.ToolCalls))
	for _, call := range draft.ToolCalls {
		results = append(results, o.tools.Execute(call))
	}
	span.SetAttributes(attribute.Int("tool_calls.resolved", len(results)))

	return transcript.Append(
		llm.Message{Role: llm.RoleModel, Content: draft.Text, ToolCalls: draft.ToolCalls},
		llm.Message{Role: llm.RoleTool, ToolResults: results},
	)
}

func (o *Orchestrator) compile(ctx context.Context, transcript Transcript) (string, error) {
	ctx, span := o.tracer.Start(ctx, "planner.compile")
	defer span.End()

	history := transcript.Append(llm.Message{Role: llm.RoleUser, Content: o.prompts.CompileInstruction()})
	out, err := o.provider.Complete(ctx, llm.CompletionRequest{
		SystemInstruction: o.prompts.SystemInstruction(),
		History:           history.Messages(),
		ResponseSchema:    o.schema,
	}, o.callOpts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", serviceError(PhaseCompile, err)
	}
	span.SetAttributes(attribute.Int("response.length", len(out.Text)))
	return out.Text, nil
}

func (o *Orchestrator) parse(ctx context.Context, raw string, transcript Transcript) (*itinerary.Document, error) {
	_, span := o.tracer.Start(ctx, "planner.parse")
	defer span.End()

	doc, err := Normalize(raw)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	itinerary.ApplyDefaults(doc)

	confirmed := verifiedLegs(transcript.ToolResults())
	doc.RestampVerification(func(leg itinerary.Leg) itinerary.VerificationStatus {
		if leg.Status == itinerary.Verified && confirmed.confirms(leg) {
			return itinerary.Verified
		}
		return itinerary.Unverified
	})

	if err := itinerary.Validate(doc); err != nil {
		span.RecordError(err)
		return nil, parseError("document failed validation", err)
	}
	return doc, nil
}
