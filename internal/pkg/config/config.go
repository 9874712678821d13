package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LoginPath string `env:"LOGIN_PATH, default=/login"`

	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	BaseURL    string        `env:"BACKEND_BASE_URL,    default=http://localhost:3001/api"`
	Timeout    time.Duration `env:"BACKEND_TIMEOUT,     default=15s"`
	EventsPath string        `env:"BACKEND_EVENTS_PATH, default=/auth/eventos"`
}

type SessionConfig struct {
	// Store selects the session store backend: "memory" or "redis".
	Store         string `env:"SESSION_STORE,  default=memory"`
	NotifyWorkers int    `env:"NOTIFY_WORKERS, default=4"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
