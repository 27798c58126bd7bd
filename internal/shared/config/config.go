package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	WhoopClientID     string
	WhoopClientSecret string
	WhoopRedirectURL  string
	WhoopAuthURL      string
	WhoopTokenURL     string
	WhoopAPIBaseURL   string

	OpenAIAPIKey string
	ArtModel     string
	ArtSize      string
	ArtQuality   string

	SessionSecret   string
	SessionTTLHours int

	ArtRatePerMinute int
	ArtRateBurst     int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))

	whoopClientID := os.Getenv("WHOOP_CLIENT_ID")
	whoopClientSecret := os.Getenv("WHOOP_CLIENT_SECRET")
	if env == "production" && (whoopClientID == "" || whoopClientSecret == "") {
		log.Printf("WHOOP_CLIENT_ID and WHOOP_CLIENT_SECRET are required in production")
	}

	return Config{
		Port:            getEnv("PORT", "3030"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3030")),

		WhoopClientID:     whoopClientID,
		WhoopClientSecret: whoopClientSecret,
		WhoopRedirectURL:  getEnv("WHOOP_REDIRECT_URL", "http://127.0.0.1:3030/callback"),
		WhoopAuthURL:      getEnv("WHOOP_AUTH_URL", "https://api.prod.whoop.com/oauth/oauth2/auth"),
		WhoopTokenURL:     getEnv("WHOOP_TOKEN_URL", "https://api.prod.whoop.com/oauth/oauth2/token"),
		WhoopAPIBaseURL:   getEnv("WHOOP_API_BASE_URL", "https://api.prod.whoop.com/developer"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		ArtModel:     getEnv("ART_MODEL", "dall-e-3"),
		ArtSize:      getEnv("ART_SIZE", "1024x1024"),
		ArtQuality:   getEnv("ART_QUALITY", "standard"),

		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionTTLHours: getInt("SESSION_TTL_HOURS", 24),

		ArtRatePerMinute: getInt("ART_RATE_PER_MINUTE", 6),
		ArtRateBurst:     getInt("ART_RATE_BURST", 2),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
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
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
