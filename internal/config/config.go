package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Knowledge sources
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	KnowledgePath   string        `envconfig:"KNOWLEDGE_PATH" default:"knowledge.yaml"`
	KnowledgeSource string        `envconfig:"KNOWLEDGE_SOURCE" default:"file"`
	WatchKnowledge  bool          `envconfig:"WATCH_KNOWLEDGE" default:"true"`
	WatchDebounce   time.Duration `envconfig:"WATCH_DEBOUNCE" default:"250ms"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	QueryLog    bool   `envconfig:"QUERY_LOG" default:"true"`
	VisitorSalt string `envconfig:"VISITOR_SALT"`

	JWTSecret         string        `envconfig:"JWT_SECRET"`
	JWTTTL            time.Duration `envconfig:"JWT_TTL" default:"12h"`
	AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	CacheSize     int           `envconfig:"CACHE_SIZE" default:"1024"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"10m"`
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`

	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"30"`
	RateLimitBurst     int `envconfig:"RATE_LIMIT_BURST" default:"10"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

// Load reads .env when present, then CONCIERGE_* environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("CONCIERGE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field requirements envconfig cannot express
func (c *Config) Validate() error {
	var problems []string

	switch c.KnowledgeSource {
	case SourceFile:
		if c.KnowledgePath == "" {
			problems = append(problems, "KNOWLEDGE_PATH is required when KNOWLEDGE_SOURCE=file")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when KNOWLEDGE_SOURCE=postgres")
		}
	default:
		problems = append(problems, fmt.Sprintf("KNOWLEDGE_SOURCE must be %q or %q, got %q", SourceFile, SourcePostgres, c.KnowledgeSource))
	}

	if c.AdminPasswordHash != "" && len(c.JWTSecret) < 32 {
		problems = append(problems, "JWT_SECRET must be at least 32 bytes when the admin API is enabled")
	}
	if c.CacheSize < 0 {
		problems = append(problems, "CACHE_SIZE must not be negative")
	}
	if c.RateLimitPerMinute <= 0 {
		problems = append(problems, "RATE_LIMIT_PER_MINUTE must be positive")
	}

	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}

// HasDatabase reports whether Postgres is configured
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// HasRedis reports whether a shared answer cache is configured
func (c *Config) HasRedis() bool {
	return c.RedisAddr != ""
}

// HasAdmin reports whether the admin API should be mounted
func (c *Config) HasAdmin() bool {
	return c.AdminPasswordHash != "" && c.JWTSecret != ""
}

// WatchesFile reports whether the knowledge file should be hot reloaded
func (c *Config) WatchesFile() bool {
	return c.WatchKnowledge && c.KnowledgeSource == SourceFile
}
