package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	sharedConfig "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/config"
)

// Config is the full application configuration.
type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Telegram     sharedConfig.TelegramConfig     `mapstructure:"telegram"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	RateLimit    sharedConfig.RateLimitConfig    `mapstructure:"rate_limit"`
	Subscription sharedConfig.SubscriptionConfig `mapstructure:"subscription"`
	AI           sharedConfig.AIConfig           `mapstructure:"ai"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configuration from ./configs/config.yaml and BOT_* environment
// variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")

	viper.SetEnvPrefix("BOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional; env vars and defaults can carry a
		// deployment on their own.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")

	viper.SetDefault("telegram.mode", "polling")
	viper.SetDefault("telegram.poll_timeout", 30)
	viper.SetDefault("telegram.worker_count", 8)

	viper.SetDefault("database.path", "bot.db")
	viper.SetDefault("database.max_open_conns", 1)
	viper.SetDefault("database.conn_max_lifetime", 60)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	viper.SetDefault("rate_limit.window_seconds", 3600)
	viper.SetDefault("rate_limit.cleanup_interval_seconds", 600)

	viper.SetDefault("subscription.free_message_ceiling", 20)
	viper.SetDefault("subscription.premium_message_ceiling", 1000)
	viper.SetDefault("subscription.monthly_price_stars", 100)
	viper.SetDefault("subscription.yearly_price_stars", 1000)

	viper.SetDefault("ai.default_model", "gemini-2.0-flash")
	viper.SetDefault("ai.attempt_timeout_seconds", 60)
	viper.SetDefault("ai.max_context_messages", 20)
	viper.SetDefault("ai.providers", []map[string]any{
		{"id": "gemini-2.0-flash", "model": "gemini-2.0-flash", "priority": 1,
			"capabilities": []string{"text", "vision", "audio"}},
		{"id": "gemini-2.5-flash", "model": "gemini-2.5-flash", "priority": 2,
			"capabilities": []string{"text", "vision", "audio"}},
		{"id": "gemini-2.5-pro", "model": "gemini-2.5-pro", "priority": 3,
			"capabilities": []string{"text"}},
	})
}
