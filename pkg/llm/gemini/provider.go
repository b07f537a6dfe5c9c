package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trip-planner-be/pkg/llm"

	"google.golang.org/genai"
)

type GeminiProvider struct {
	client    *genai.Client
	ModelName string
}

// Ensure GeminiProvider implements LLMProvider
var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, ModelName: modelName}, nil
}

func (g *GeminiProvider) Complete(ctx context.Context, req llm.CompletionRequest, opts ...llm.Option) (*llm.Completion, error) {
	options := llm.ApplyOptions(llm.Options{Model: g.ModelName, Temperature: -1}, opts...)

	resp, err := g.client.Models.GenerateContent(ctx, options.Model, toContents(req.History), toConfig(req, options))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	return fromResponse(resp)
}

// toConfig maps the neutral request onto GenerateContentConfig. A negative
// temperature means "use the model default".
func toConfig(req llm.CompletionRequest, options llm.Options) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}}
	}
	if options.Temperature >= 0 {
		cfg.Temperature = genai.Ptr(float32(options.Temperature))
	}
	if options.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(options.MaxTokens)
	}
	if options.ThinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(int32(options.ThinkingBudget))}
	}
	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, t := range req.Tools {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  toSchema(t.Parameters),
			})
		}
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}
	if req.ResponseSchema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toSchema(req.ResponseSchema)
	}
	return cfg
}

func toContents(history []llm.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleTool:
			parts := make([]*genai.Part, 0, len(msg.ToolResults))
			for _, r := range msg.ToolResults {
				parts = append(parts, &genai.Part{FunctionResponse: &genai.FunctionResponse{
					ID:       r.CallID,
					Name:     r.Name,
					Response: r.Response,
				}})
			}
			// Function responses travel on a user turn.
			contents = append(contents, &genai.Content{Role: "user", Parts: parts})
		case llm.RoleModel:
			var parts []*genai.Part
			if msg.Content != "" {
				parts = append(parts, &genai.Part{Text: msg.Content})
			}
			for _, c := range msg.ToolCalls {
				parts = append(parts, &genai.Part{
					FunctionCall:     &genai.FunctionCall{ID: c.ID, Name: c.Name, Args: c.Args},
					ThoughtSignature: c.Signature,
				})
			}
			contents = append(contents, &genai.Content{Role: "model", Parts: parts})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{{Text: msg.Content}}})
		}
	}
	return contents
}

var schemaTypes = map[string]genai.Type{
	llm.TypeObject:  genai.TypeObject,
	llm.TypeArray:   genai.TypeArray,
	llm.TypeString:  genai.TypeString,
	llm.TypeNumber:  genai.TypeNumber,
	llm.TypeInteger: genai.TypeInteger,
	llm.TypeBoolean: genai.TypeBoolean,
}

func toSchema(s *llm.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:             schemaTypes[s.Type],
		Description:      s.Description,
		Required:         s.Required,
		Enum:             s.Enum,
		Format:           s.Format,
		PropertyOrdering: s.PropertyOrdering,
		Items:            toSchema(s.Items),
	}
	if s.Nullable {
		out.Nullable = genai.Ptr(true)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toSchema(prop)
		}
	}
	return out
}

func fromResponse(resp *genai.GenerateContentResponse) (*llm.Completion, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("gemini returned no candidates")
	}
	cand := resp.Candidates[0]

	var text strings.Builder
	out := &llm.Completion{FinishReason: string(cand.FinishReason)}
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		if part.FunctionCall != nil {
			out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
				ID:        part.FunctionCall.ID,
				Name:      part.FunctionCall.Name,
				Args:      part.FunctionCall.Args,
				Signature: part.ThoughtSignature,
			})
			continue
		}
		text.WriteString(part.Text)
	}
	out.Text = text.String()
	return out, nil
}
