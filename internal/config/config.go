package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Keys    APIKeys
	Ai      AIConfig
	Session SessionConfig
	Tracing TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
	NatsURL            string // Empty disables forwarding to NATS
	RedisURL           string // Empty disables cross-instance fanout
	EventsTopic        string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
}

type AIConfig struct {
	LLMProvider    string // "gemini", "ollama" or "huggingface"
	LLMModel       string // e.g. "gemini-2.5-pro", "llama3.1"
	OllamaBaseURL  string
	HFBaseURL      string
	Timeout        time.Duration
	ThinkingBudget int
	Temperature    float64 // Negative leaves the model default
}

type SessionConfig struct {
	TTL time.Duration
}

// TracingConfig drives the OTLP exporter. Tracing stays off unless Enabled.
type TracingConfig struct {
	Enabled     bool
	Endpoint    string // host:port of the OTLP HTTP receiver
	Insecure    bool
	ServiceName string
	SampleRatio float64
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "websocket.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			EventsTopic:        getEnv("EVENTS_TOPIC", "TRIP_PLANNER_EVENTS"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HF_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:       getEnv("LLM_MODEL", "gemini-2.5-pro"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HFBaseURL:      getEnv("HF_BASE_URL", ""),
			Timeout:        time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 180)) * time.Second,
			ThinkingBudget: getEnvAsInt("LLM_THINKING_BUDGET", 8192),
			Temperature:    getEnvAsFloat("LLM_TEMPERATURE", -1),
		},
		Session: SessionConfig{
			TTL: time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			Insecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "trip-planner-backend"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
