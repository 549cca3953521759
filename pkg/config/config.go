package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	WhatsApp WhatsAppConfig `mapstructure:"whatsapp"`
}

type ServerConfig struct {
	ListenAddr        string `mapstructure:"listen_addr"`
	WebhookKey        string `mapstructure:"webhook_key"`
	PoolSize          int    `mapstructure:"pool_size"`
	JobTimeoutSeconds int    `mapstructure:"job_timeout_seconds"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type WhatsAppConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	APIToken string `mapstructure:"api_token"`
}

// Load reads the optional config file and applies environment overrides, so
// the service runs from env alone in containerized deployments.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("server.pool_size", 16)
	v.SetDefault("server.job_timeout_seconds", 60)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 300)
	v.SetDefault("openai.temperature", 0.2)

	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)

			if err = v.ReadInConfig(); err != nil {
				return nil, errors.Wrap(err, "failed to read config file")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if dsn := v.GetString("POSTGRES_CONNECTION_STRING"); dsn != "" {
		cfg.Database.DSN = dsn
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		cfg.OpenAI.APIKey = apiKey
	}

	if token := v.GetString("WHATSAPP_API_TOKEN"); token != "" {
		cfg.WhatsApp.APIToken = token
	}

	if baseURL := v.GetString("WHATSAPP_BASE_URL"); baseURL != "" {
		cfg.WhatsApp.BaseURL = baseURL
	}

	if key := v.GetString("WEBHOOK_KEY"); key != "" {
		cfg.Server.WebhookKey = key
	}

	return &cfg, nil
}
