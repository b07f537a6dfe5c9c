package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("SESSION_TTL_MINUTES", "15")
	t.Setenv("LLM_TEMPERATURE", "0.3")
	t.Setenv("NATS_URL", "")

	cfg := Load()

	assert.Equal(t, "gemini", cfg.Ai.LLMProvider)
	assert.Equal(t, 180*time.Second, cfg.Ai.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.InDelta(t, 0.3, cfg.Ai.Temperature, 1e-9)
	assert.Empty(t, cfg.App.NatsURL)
}

func TestIsProduction(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "production"}}
	assert.True(t, cfg.IsProduction())
	cfg.App.Environment = "development"
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Tracing(t *testing.T) {
	tests := []struct {
		name    string
		enabled string
		ratio   string
		want    TracingConfig
	}{
		{
			name:    "off unless asked",
			enabled: "",
			ratio:   "",
			want:    TracingConfig{Enabled: false, Endpoint: "collector:4318", Insecure: true, ServiceName: "trip-planner-backend", SampleRatio: 1},
		},
		{
			name:    "enabled with ratio",
			enabled: "true",
			ratio:   "0.25",
			want:    TracingConfig{Enabled: true, Endpoint: "collector:4318", Insecure: true, ServiceName: "trip-planner-backend", SampleRatio: 0.25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OTEL_ENABLED", tt.enabled)
			t.Setenv("OTEL_SAMPLE_RATIO", tt.ratio)
			t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
			t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "")
			t.Setenv("OTEL_SERVICE_NAME", "trip-planner-backend")

			assert.Equal(t, tt.want, Load().Tracing)
		})
	}
}
