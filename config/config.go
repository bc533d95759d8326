// Package config loads the server configuration: a config.yaml if present,
// overridden by RESTY_* environment variables, with a .env file loaded
// first for local development. The library packages never read
// configuration themselves; everything is passed in explicitly.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main application configuration struct.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	HTTP   HTTPConfig   `mapstructure:"http"`
	Model  ModelConfig  `mapstructure:"model"`
	Sheets SheetsConfig `mapstructure:"sheets"`
	Redis  RedisConfig  `mapstructure:"redis"`
}

// AppConfig holds environment-independent application settings.
type AppConfig struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"` // json or text
}

// HTTPConfig configures the chat API listener.
type HTTPConfig struct {
	Addr            string   `mapstructure:"addr"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // seconds
}

// ModelConfig selects and tunes the generative backend.
type ModelConfig struct {
	// Provider is "openai" or "anthropic". API keys come from the standard
	// provider environment variables (OPENAI_API_KEY, ANTHROPIC_API_KEY).
	Provider       string `mapstructure:"provider"`
	OpenAIModel    string `mapstructure:"openai_model"`
	AnthropicModel string `mapstructure:"anthropic_model"`
}

// SheetsConfig identifies the restaurant spreadsheet.
type SheetsConfig struct {
	APIKey        string `mapstructure:"api_key"`
	SpreadsheetID string `mapstructure:"spreadsheet_id"`
	Range         string `mapstructure:"range"`
}

// RedisConfig enables Redis-backed sessions and table caching. With an
// empty address everything stays in process memory.
type RedisConfig struct {
	Address       string        `mapstructure:"address"`
	Password      string        `mapstructure:"password"`
	DB            int           `mapstructure:"db"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	TableCacheTTL time.Duration `mapstructure:"table_cache_ttl"`
}

// Enabled reports whether Redis wiring was requested.
func (r RedisConfig) Enabled() bool { return r.Address != "" }

// Load reads configuration from config.yaml (optional) and the
// environment. A .env file in the working directory is honored first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("RESTY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("http.shutdown_timeout", 10)
	v.SetDefault("model.provider", "openai")
	v.SetDefault("model.openai_model", "gpt-4o-mini")
	v.SetDefault("model.anthropic_model", "claude-3-5-sonnet-20241022")
	v.SetDefault("sheets.range", "Sheet1!A:Z")
	// Empty defaults register the keys so AutomaticEnv can override them.
	v.SetDefault("sheets.api_key", "")
	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.session_ttl", 24*time.Hour)
	v.SetDefault("redis.table_cache_ttl", time.Hour)
}

// Validate checks the fields the server cannot run without.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("model.provider must be openai or anthropic, got %q", c.Model.Provider)
	}
	if c.Sheets.APIKey == "" {
		return fmt.Errorf("sheets.api_key is required (RESTY_SHEETS_API_KEY)")
	}
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("sheets.spreadsheet_id is required (RESTY_SHEETS_SPREADSHEET_ID)")
	}
	return nil
}
