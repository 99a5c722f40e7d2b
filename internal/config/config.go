package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/kdduha/skillscribe/internal/errs"
)

const (
	ProviderOpenAI = "openai"
	ProviderVertex = "vertex"
)

type Config struct {
	Server        ServerConfig
	AI            AIConfig
	OpenAI        OpenAIConfig
	Vertex        VertexConfig
	RedisConfig   RedisConfig
	Session       SessionConfig
	CacheEnable   bool   `env:"CACHE_ENABLE"`
	TracingEnable bool   `env:"TRACING_ENABLE"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	Environment   string `env:"ENVIRONMENT" envDefault:"development"`
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"50"`
}

type AIConfig struct {
	Provider  string  `env:"AI_PROVIDER" envDefault:"openai"`
	Model     string  `env:"AI_MODEL" envDefault:"gemini-2.5-flash"`
	RateLimit float64 `env:"AI_RATE_LIMIT" envDefault:"5"`
	RateBurst int     `env:"AI_RATE_BURST" envDefault:"10"`
}

// OpenAIConfig targets any OpenAI-compatible endpoint. The default base URL
// is the Gemini compatibility layer so a plain Gemini API key works.
type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
}

type VertexConfig struct {
	ProjectID string `env:"VERTEX_PROJECT_ID"`
	Region    string `env:"VERTEX_REGION" envDefault:"us-central1"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"redis:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"10m"`
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL" envDefault:"1h"`
}

// Load reads a local .env file when present and then the process environment.
// A missing credential for the selected provider is reported as a ConfigError.
func Load() (*Config, error) {
	// not an error: deployed environments have no .env file
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.AI.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return errs.NewConfigError("API_KEY environment variable not set")
		}
	case ProviderVertex:
		if c.Vertex.ProjectID == "" {
			return errs.NewConfigError("VERTEX_PROJECT_ID environment variable not set")
		}
	default:
		return errs.NewConfigError(fmt.Sprintf("unsupported AI_PROVIDER {%s}", c.AI.Provider))
	}
	if c.AI.Model == "" {
		return errs.NewConfigError("AI_MODEL must not be empty")
	}
	if c.AI.RateLimit <= 0 || c.AI.RateBurst <= 0 {
		return errs.NewConfigError("AI_RATE_LIMIT and AI_RATE_BURST must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
