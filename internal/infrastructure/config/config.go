package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port        string   `env:"PORT,         default=4000"`
	Env         string   `env:"ENV,          default=development"`
	LogLevel    string   `env:"LOG_LEVEL,    default=info"`
	StoreDriver string   `env:"STORE_DRIVER, default=mongo"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	Mongo     MongoConfig
	Redis     RedisConfig
	GitHub    GitHubConfig
	Lock      LockConfig
	Reconcile ReconcileConfig
}

type MongoConfig struct {
	URI          string `env:"DATABASE_URL,       default=mongodb://localhost:27017"`
	Database     string `env:"MONGO_DB,           default=alumni_directory"`
	Transactions bool   `env:"MONGO_TRANSACTIONS, default=true"`
}

// RedisConfig is optional; without REDIS_ADDR locks are process-local.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type GitHubConfig struct {
	ClientID     string        `env:"CLIENT_ID"`
	ClientSecret string        `env:"CLIENT_SECRET"`
	TokenURL     string        `env:"GITHUB_TOKEN_URL, default=https://github.com/login/oauth/access_token"`
	APIURL       string        `env:"GITHUB_API_URL,   default=https://api.github.com"`
	Timeout      time.Duration `env:"GITHUB_TIMEOUT,   default=10s"`
}

type LockConfig struct {
	TTL  time.Duration `env:"LOCK_TTL,  default=10s"`
	Wait time.Duration `env:"LOCK_WAIT, default=3s"`
}

// ReconcileConfig controls the alumni rebuild sweep. Interval 0 disables the
// periodic sweep; failed non-transactional moves are still reconciled.
type ReconcileConfig struct {
	Interval time.Duration `env:"RECONCILE_INTERVAL, default=10m"`
	Workers  int           `env:"RECONCILE_WORKERS,  default=4"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads a .env file when present, then configuration from environment
// variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}

	switch cfg.StoreDriver {
	case StoreMongo, StoreMemory:
	default:
		return nil, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return &cfg, nil
}
