package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ats-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	DatabaseURL     string
	Env             string

	// TaxonomyFile overrides the built-in skill catalog when set.
	TaxonomyFile        string
	AnalyzeMaxChars     int
	SuggestionsMaxChars int
	UploadMaxBytes      int64
	HistoryMaxItems     int

	LLMProvider string
	LLMModel    string
	GroqAPIKey  string
	GeminiKey   string
	LLMTimeout  time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience; existing env wins.
	for _, path := range []string{".env", "cmd/.env"} {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			telemetry.Error("config.dotenv_failed", map[string]any{"path": path, "error": err})
		}
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		telemetry.Error("config.database_url_missing", map[string]any{"env": env})
	}

	return Config{
		Port:                getEnv("PORT", "8080"),
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:         dbURL,
		Env:                 env,
		TaxonomyFile:        getEnv("TAXONOMY_FILE", ""),
		AnalyzeMaxChars:     getEnvInt("ANALYZE_MAX_CHARS", 50000),
		SuggestionsMaxChars: getEnvInt("SUGGESTIONS_MAX_CHARS", 10000),
		UploadMaxBytes:      int64(getEnvInt("UPLOAD_MAX_BYTES", 5<<20)),
		HistoryMaxItems:     getEnvInt("HISTORY_MAX_ITEMS", 50),
		LLMProvider:         normalizeProvider(getEnv("LLM_PROVIDER", "groq")),
		LLMModel:            getEnv("LLM_MODEL", ""),
		GroqAPIKey:          getEnv("GROQ_API_KEY", ""),
		GeminiKey:           getEnv("GEMINI_API_KEY", ""),
		LLMTimeout:          time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		RateLimitRPS:        getEnvFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 10),
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		telemetry.Error("config.invalid_int", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val <= 0 {
		telemetry.Error("config.invalid_float", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return "gemini"
	case "none", "disabled", "off":
		return "none"
	default:
		return "groq"
	}
}
