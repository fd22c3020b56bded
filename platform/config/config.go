// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetEmailProvider() string
	GetResendAPIKey() string
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetTeamNotificationEmail() string
}

// AIConfig provides settings for the Anthropic conversation service.
type AIConfig interface {
	GetAnthropicAPIKey() string
	GetChatModel() string
	GetSuggestModel() string
	IsAIEnabled() bool
}

// RateLimitConfig provides settings for the fixed-window rate limiter.
type RateLimitConfig interface {
	GetRedisURL() string
	GetChatRateLimit() int
	GetSuggestRateLimit() int
	GetEstimateRateLimit() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	CORSAllowAll          bool
	CORSOrigins           []string
	CORSAllowCreds        bool
	AnthropicAPIKey       string
	ChatModel             string
	SuggestModel          string
	EmailEnabled          bool
	EmailProvider         string
	ResendAPIKey          string
	SMTPHost              string
	SMTPPort              int
	SMTPUsername          string
	SMTPPassword          string
	EmailFromName         string
	EmailFromAddress      string
	TeamNotificationEmail string
	RedisURL              string
	ChatRateLimit         int
	SuggestRateLimit      int
	EstimateRateLimit     int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool            { return c.EmailEnabled }
func (c *Config) GetEmailProvider() string         { return c.EmailProvider }
func (c *Config) GetResendAPIKey() string          { return c.ResendAPIKey }
func (c *Config) GetSMTPHost() string              { return c.SMTPHost }
func (c *Config) GetSMTPPort() int                 { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string          { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string          { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string         { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string      { return c.EmailFromAddress }
func (c *Config) GetTeamNotificationEmail() string { return c.TeamNotificationEmail }

// AIConfig implementation
func (c *Config) GetAnthropicAPIKey() string { return c.AnthropicAPIKey }
func (c *Config) GetChatModel() string       { return c.ChatModel }
func (c *Config) GetSuggestModel() string    { return c.SuggestModel }
func (c *Config) IsAIEnabled() bool          { return c.AnthropicAPIKey != "" }

// RateLimitConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetChatRateLimit() int     { return c.ChatRateLimit }
func (c *Config) GetSuggestRateLimit() int  { return c.SuggestRateLimit }
func (c *Config) GetEstimateRateLimit() int { return c.EstimateRateLimit }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4321"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:          corsAllowAll,
		CORSOrigins:           corsOrigins,
		CORSAllowCreds:        strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		AnthropicAPIKey:       getEnv("ANTHROPIC_API_KEY", ""),
		ChatModel:             getEnv("CHAT_MODEL", "claude-sonnet-4-20250514"),
		SuggestModel:          getEnv("SUGGEST_MODEL", "claude-haiku-4-5-20251001"),
		EmailEnabled:          strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true"),
		EmailProvider:         strings.ToLower(getEnv("EMAIL_PROVIDER", "resend")),
		ResendAPIKey:          getEnv("RESEND_API_KEY", ""),
		SMTPHost:              getEnv("SMTP_HOST", ""),
		SMTPPort:              mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:          getEnv("SMTP_USERNAME", ""),
		SMTPPassword:          getEnv("SMTP_PASSWORD", ""),
		EmailFromName:         getEnv("EMAIL_FROM_NAME", "Antares"),
		EmailFromAddress:      getEnv("FROM_EMAIL", ""),
		TeamNotificationEmail: getEnv("TEAM_NOTIFICATION_EMAIL", ""),
		RedisURL:              getEnv("REDIS_URL", ""),
		ChatRateLimit:         mustInt(getEnv("RATE_LIMIT_CHAT", "10")),
		SuggestRateLimit:      mustInt(getEnv("RATE_LIMIT_SUGGEST", "10")),
		EstimateRateLimit:     mustInt(getEnv("RATE_LIMIT_ESTIMATE", "3")),
	}

	if cfg.EmailEnabled {
		switch cfg.EmailProvider {
		case "resend":
			if cfg.ResendAPIKey == "" {
				return nil, fmt.Errorf("RESEND_API_KEY is required when EMAIL_PROVIDER is resend")
			}
		case "smtp":
			if cfg.SMTPHost == "" {
				return nil, fmt.Errorf("SMTP_HOST is required when EMAIL_PROVIDER is smtp")
			}
		default:
			return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
		}
		if cfg.EmailFromAddress == "" {
			return nil, fmt.Errorf("FROM_EMAIL is required when email is enabled")
		}
		if cfg.TeamNotificationEmail == "" {
			return nil, fmt.Errorf("TEAM_NOTIFICATION_EMAIL is required when email is enabled")
		}
	}
	if cfg.ChatRateLimit <= 0 || cfg.SuggestRateLimit <= 0 || cfg.EstimateRateLimit <= 0 {
		return nil, fmt.Errorf("rate limit thresholds must be positive")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
