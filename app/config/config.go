package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string `env:"APP_ENV"`
	LogLevel string `env:"LOG_LEVEL"`

	Server  HTTPServerConfig
	LLM     LLMConfig
	Retry   RetryConfig
	Metrics MetricsConfig
}

type HTTPServerConfig struct {
	Host            string        `env:"SERVER_HOST"`
	Port            int           `env:"SERVER_PORT"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

type LLMConfig struct {
	// Provider is "gemini" or "openai" (any chat completions compatible API).
	Provider    string        `env:"LLM_PROVIDER"`
	// APIKey is read from LLM_API_KEY, falling back to GEMINI_API_KEY for
	// either provider.
	APIKey      string        `env:"LLM_API_KEY"`
	BaseURL     string        `env:"LLM_BASE_URL"`
	Model       string        `env:"LLM_MODEL"`
	Temperature float32       `env:"LLM_TEMPERATURE"`
	MaxTokens   int           `env:"LLM_MAX_TOKENS"`
	Timeout     time.Duration `env:"LLM_TIMEOUT"`
	JSONMode    bool          `env:"LLM_JSON_MODE"`
}

type RetryConfig struct {
	MaxAttempts int           `env:"RETRY_MAX_ATTEMPTS"`
	Delay       time.Duration `env:"RETRY_DELAY"`
}

type MetricsConfig struct {
	// Addr enables a dedicated metrics listener, e.g. ":2112". /metrics is
	// always served on the main router as well.
	Addr string `env:"METRICS_ADDR"`
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// writeTimeoutHeadroom is the time left after the last generation attempt
// for the handler to write its error response.
const writeTimeoutHeadroom = 10 * time.Second

func Default() Config {
	return Config{
		AppEnv:   "production",
		LogLevel: "info",
		Server: HTTPServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    4 * time.Minute,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		LLM: LLMConfig{
			Provider: ProviderGemini,
			Model:    "gemini-1.5-flash",
			Timeout:  60 * time.Second,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			Delay:       time.Second,
		},
	}
}

// Load builds the configuration from defaults, then the optional HCL file at
// path (or $CONFIG_FILE), then environment variables. For the API key
// LLM_API_KEY wins over GEMINI_API_KEY. A .env file in the
// working directory is loaded into the environment first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.Delay < 0 {
		return fmt.Errorf("retry delay must not be negative, got %s", c.Retry.Delay)
	}
	if budget := c.GenerationBudget(); c.Server.WriteTimeout > 0 && budget > 0 &&
		c.Server.WriteTimeout < budget+writeTimeoutHeadroom {
		return fmt.Errorf("server write timeout %s must be at least %s (%d attempts of %s, %s apart, plus %s)",
			c.Server.WriteTimeout, budget+writeTimeoutHeadroom,
			c.Retry.MaxAttempts, c.LLM.Timeout, c.Retry.Delay, writeTimeoutHeadroom)
	}
	return nil
}

// GenerationBudget is the longest a request can spend in the retry loop, or
// 0 when model calls have no timeout.
func (c *Config) GenerationBudget() time.Duration {
	if c.LLM.Timeout <= 0 {
		return 0
	}
	n := time.Duration(c.Retry.MaxAttempts)
	return n*c.LLM.Timeout + (n-1)*c.Retry.Delay
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LLMConfigured reports whether an API key for the model service is set.
func (c *Config) LLMConfigured() bool {
	return c.LLM.APIKey != ""
}
