package config

import (
	"fmt"
	"time"
)

// ServerConfig holds the HTTP server settings used in webhook mode.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TelegramConfig holds Telegram Bot API settings.
type TelegramConfig struct {
	BotToken      string `mapstructure:"bot_token" validate:"required"`
	AdminUserID   int64  `mapstructure:"admin_user_id" validate:"required,gt=0"`
	Mode          string `mapstructure:"mode" validate:"oneof=polling webhook"`
	WebhookURL    string `mapstructure:"webhook_url"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	PollTimeout   int    `mapstructure:"poll_timeout"`
	WorkerCount   int    `mapstructure:"worker_count"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path            string `mapstructure:"path" validate:"required"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// RateLimitConfig holds sliding-window rate limiter settings.
type RateLimitConfig struct {
	WindowSeconds          int `mapstructure:"window_seconds" validate:"gt=0"`
	CleanupIntervalSeconds int `mapstructure:"cleanup_interval_seconds" validate:"gt=0"`
}

func (c *RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

func (c *RateLimitConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalSeconds) * time.Second
}

// SubscriptionConfig holds tier pricing and quota overrides.
type SubscriptionConfig struct {
	FreeMessageCeiling    int `mapstructure:"free_message_ceiling" validate:"gt=0"`
	PremiumMessageCeiling int `mapstructure:"premium_message_ceiling" validate:"gt=0"`
	MonthlyPriceStars     int `mapstructure:"monthly_price_stars" validate:"gt=0"`
	YearlyPriceStars      int `mapstructure:"yearly_price_stars" validate:"gt=0"`
}

// ProviderConfig describes one AI provider in the fallback chain.
type ProviderConfig struct {
	ID           string   `mapstructure:"id" validate:"required"`
	Model        string   `mapstructure:"model" validate:"required"`
	Capabilities []string `mapstructure:"capabilities"`
	Priority     int      `mapstructure:"priority"`
}

// AIConfig holds AI provider settings.
type AIConfig struct {
	GeminiAPIKey       string           `mapstructure:"gemini_api_key" validate:"required"`
	DefaultModel       string           `mapstructure:"default_model"`
	AttemptTimeoutSecs int              `mapstructure:"attempt_timeout_seconds" validate:"gt=0"`
	MaxContextMessages int              `mapstructure:"max_context_messages" validate:"gt=0"`
	Providers          []ProviderConfig `mapstructure:"providers" validate:"min=1,dive"`
}

func (c *AIConfig) AttemptTimeout() time.Duration {
	return time.Duration(c.AttemptTimeoutSecs) * time.Second
}
