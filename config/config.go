package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Surfaces served by the binary.
const (
	ModeAll       = "all"
	ModeBackend   = "backend"
	ModeFrontDesk = "frontdesk"
)

// Flow snapshot stores.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Config struct {
	Port        string `env:"PORT"         envDefault:"8080"`
	Mode        string `env:"APP_MODE"     envDefault:"all"`
	CorsOrigins string `env:"CORS_ORIGINS"`

	MySQLURL    string `env:"MYSQL_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBUser      string `env:"DB_USER"      envDefault:"root"`
	DBPass      string `env:"DB_PASS"`
	DBHost      string `env:"DB_HOST"      envDefault:"127.0.0.1"`
	DBPort      string `env:"DB_PORT"      envDefault:"3306"`
	DBName      string `env:"DB_NAME"      envDefault:"hotel_frontdesk"`
	DBLogLevel  string `env:"DB_LOG_LEVEL" envDefault:"warn"`
	DBSeed      bool   `env:"DB_SEED"      envDefault:"true"`

	APIBaseURL string        `env:"HOTEL_API_BASE_URL" envDefault:"http://localhost:8080"`
	APITimeout time.Duration `env:"HOTEL_API_TIMEOUT"  envDefault:"0s"`

	FlowStore      string        `env:"FLOW_STORE"       envDefault:"memory"`
	FlowSQLitePath string        `env:"FLOW_SQLITE_PATH" envDefault:"walkin-flow.db"`
	FlowStateTTL   time.Duration `env:"FLOW_STATE_TTL"   envDefault:"24h"`
	FlowIdle       time.Duration `env:"FLOW_SESSION_IDLE" envDefault:"2h"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"  envDefault:"0"`
	RedisTLS      bool   `env:"REDIS_TLS" envDefault:"false"`

	AMQPURL string `env:"AMQP_URL"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
	LogFile   string `env:"LOG_FILE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads an optional .env file and then the environment. It reports whether a .env file
// was found.
func Load() (Config, bool, error) {
	dotenv := true
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, false, fmt.Errorf("load .env: %w", err)
		}
		dotenv = false
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, dotenv, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, dotenv, err
	}
	return cfg, dotenv, nil
}

func (c *Config) Validate() error {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	switch c.Mode {
	case ModeAll, ModeBackend, ModeFrontDesk:
	default:
		return fmt.Errorf("APP_MODE must be one of all, backend, frontdesk: got %q", c.Mode)
	}
	c.FlowStore = strings.ToLower(strings.TrimSpace(c.FlowStore))
	switch c.FlowStore {
	case StoreMemory, StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("FLOW_STORE must be one of memory, sqlite, redis: got %q", c.FlowStore)
	}
	if c.FlowStore == StoreSQLite && strings.TrimSpace(c.FlowSQLitePath) == "" {
		return errors.New("FLOW_SQLITE_PATH is required for the sqlite flow store")
	}
	if c.FlowIdle < 0 {
		return errors.New("FLOW_SESSION_IDLE must not be negative")
	}
	if c.APITimeout < 0 {
		return errors.New("HOTEL_API_TIMEOUT must not be negative")
	}
	if c.ServesFrontDesk() && strings.TrimSpace(c.APIBaseURL) == "" {
		return errors.New("HOTEL_API_BASE_URL is required for the front desk")
	}
	return nil
}

func (c Config) ServesBackend() bool {
	return c.Mode == ModeAll || c.Mode == ModeBackend
}

func (c Config) ServesFrontDesk() bool {
	return c.Mode == ModeAll || c.Mode == ModeFrontDesk
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
