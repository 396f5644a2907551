package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"*"`
	}

	// Store selects the blob backend holding the registry documents.
	Store struct {
		// Backend is one of: redis, file, memory.
		Backend string `env:"STORE_BACKEND" envDefault:"redis"`

		// DataDir is used by the file backend.
		DataDir string `env:"STORE_DATA_DIR" envDefault:"./data"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	// Registry bounds the optimistic-retry loop of mutating operations.
	Registry struct {
		MaxRetries int           `env:"REGISTRY_MAX_RETRIES" envDefault:"5"`
		RetryWait  time.Duration `env:"REGISTRY_RETRY_WAIT" envDefault:"10ms"`
		Timeout    time.Duration `env:"REGISTRY_TIMEOUT" envDefault:"2s"`
	}
}

func Load() *Config {
	// Missing .env is fine, variables may be set directly in the environment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
