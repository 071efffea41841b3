// Package config provides configuration loading and logger setup for the
// website cloner service.
package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/website-cloner/internal/llm"
	"github.com/jonathan/website-cloner/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Scrape ScrapeConfig `yaml:"scrape" mapstructure:"scrape"`
	LLM    LLMConfig    `yaml:"llm" mapstructure:"llm"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port          int    `yaml:"port" mapstructure:"port"`
	AllowedOrigin string `yaml:"allowed_origin" mapstructure:"allowed_origin"`
}

// StoreConfig configures the record store backend.
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	Path   string `yaml:"path" mapstructure:"path"`
}

// ScrapeConfig configures the scrape pipeline.
type ScrapeConfig struct {
	FetchTimeoutSecs      int    `yaml:"fetch_timeout_secs" mapstructure:"fetch_timeout_secs"`
	ScreenshotTimeoutSecs int    `yaml:"screenshot_timeout_secs" mapstructure:"screenshot_timeout_secs"`
	ScreenshotsDir        string `yaml:"screenshots_dir" mapstructure:"screenshots_dir"`
}

// LLMConfig configures the clone model.
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"`
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	APIKey      string  `yaml:"api_key" mapstructure:"api_key"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CLONER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origin", "http://localhost:3000")
	v.SetDefault("store.driver", store.DriverJSON)
	v.SetDefault("store.path", "scraped_data.json")
	v.SetDefault("scrape.fetch_timeout_secs", 10)
	v.SetDefault("scrape.screenshot_timeout_secs", 90)
	v.SetDefault("scrape.screenshots_dir", "public/screenshots")
	v.SetDefault("llm.provider", string(llm.ProviderAnthropic))
	v.SetDefault("llm.max_tokens", 4000)
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = apiKeyFromEnv(llm.Provider(cfg.LLM.Provider))
	}

	return &cfg, nil
}

// Validate checks that the configuration can run the service. The model
// credential is required; the process fails fast without it.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case store.DriverJSON, store.DriverSQLite:
	default:
		return eris.Errorf("config: unknown store driver %q", c.Store.Driver)
	}

	if c.LLM.APIKey == "" {
		return eris.Errorf("config: missing API key for provider %q (set %s)",
			c.LLM.Provider, apiKeyEnvVar(llm.Provider(c.LLM.Provider)))
	}

	return nil
}

// LLMClientConfig converts the loaded settings into an llm.Config, filling
// in the provider's default model when none is configured.
func (c *Config) LLMClientConfig() *llm.Config {
	var base *llm.Config
	switch llm.Provider(c.LLM.Provider) {
	case llm.ProviderGemini:
		base = llm.DefaultGeminiConfig()
	default:
		base = llm.DefaultAnthropicConfig()
	}

	if c.LLM.Model != "" {
		base.Model = c.LLM.Model
	}
	if c.LLM.MaxTokens > 0 {
		base.MaxTokens = c.LLM.MaxTokens
	}
	if c.LLM.Temperature > 0 {
		base.Temperature = c.LLM.Temperature
	}
	return base
}

// apiKeyEnvVar names the conventional environment variable for a provider's
// credential.
func apiKeyEnvVar(provider llm.Provider) string {
	if provider == llm.ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "ANTHROPIC_API_KEY"
}

func apiKeyFromEnv(provider llm.Provider) string {
	return os.Getenv(apiKeyEnvVar(provider))
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
