package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration. It is loaded once at startup and
// passed by reference; business logic never reads the environment directly.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Lead storage
	LeadsFile string

	// Completion provider (Azure OpenAI-compatible)
	OpenAIEndpoint   string
	OpenAIAPIKey     string
	OpenAIDeployment string
	ChatMaxTokens    int
	ChatTemperature  float64

	// Search provider (optional; chat degrades gracefully without it)
	SearchEndpoint string
	SearchAPIKey   string
	SearchIndex    string

	// HTTP surface
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	// Lead email alerts (optional)
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	LeadAlertEmail    string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		LeadsFile: getEnv("LEADS_FILE", "data/leads.json"),

		OpenAIEndpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
		OpenAIAPIKey:     getEnv("AZURE_OPENAI_API_KEY", ""),
		OpenAIDeployment: getEnv("AZURE_OPENAI_DEPLOYMENT", "gpt-4o"),
		ChatMaxTokens:    getEnvAsInt("CHAT_MAX_TOKENS", 300),
		ChatTemperature:  getEnvAsFloat("CHAT_TEMPERATURE", 0.7),

		SearchEndpoint: getEnv("AZURE_SEARCH_ENDPOINT", ""),
		SearchAPIKey:   getEnv("AZURE_SEARCH_API_KEY", ""),
		SearchIndex:    getEnv("AZURE_SEARCH_INDEX", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Prismatek"),
		LeadAlertEmail:    getEnv("LEAD_ALERT_EMAIL", ""),
	}
}

// SearchConfigured reports whether the search provider can be used.
func (c *Config) SearchConfigured() bool {
	return c.SearchEndpoint != "" && c.SearchAPIKey != "" && c.SearchIndex != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
