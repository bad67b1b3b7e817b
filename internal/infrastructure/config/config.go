package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string `env:"PORT,        default=8000"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	CORSOrigin string `env:"CORS_ORIGIN, default=*"`

	Token TokenConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// TokenConfig carries the two signing secrets and lifetimes. The access and
// refresh secrets must differ; tokens signed with one never verify against
// the other.
type TokenConfig struct {
	AccessSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL, default=240h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=employee_hub"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Token.AccessSecret == "" || cfg.Token.RefreshSecret == "" {
		return nil, errors.New("config: ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}
	if cfg.Token.AccessSecret == cfg.Token.RefreshSecret {
		return nil, errors.New("config: access and refresh token secrets must differ")
	}
	return &cfg, nil
}
