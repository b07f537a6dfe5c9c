package factory

import (
	"context"
	"fmt"
	"time"

	"trip-planner-be/pkg/llm"
	"trip-planner-be/pkg/llm/gemini"
	"trip-planner-be/pkg/llm/huggingface"
	"trip-planner-be/pkg/llm/ollama"
)

// ProviderConfig carries what any backend might need; each one reads its subset.
type ProviderConfig struct {
	Type    string // "gemini", "ollama", "huggingface"
	Model   string
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewLLMProvider(ctx context.Context, cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Type {
	case "gemini":
		model := cfg.Model
		if model == "" {
			model = "gemini-2.5-pro"
		}
		return gemini.NewGeminiProvider(ctx, cfg.APIKey, model)
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model, cfg.Timeout), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Type)
	}
}
