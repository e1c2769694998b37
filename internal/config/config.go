// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/filevault/pkg/db"
	"github.com/dmitrymomot/filevault/pkg/logger"
	"github.com/dmitrymomot/filevault/pkg/mailer"
	"github.com/dmitrymomot/filevault/pkg/mailer/resend"
	"github.com/dmitrymomot/filevault/pkg/redis"
	"github.com/dmitrymomot/filevault/pkg/storage"
)

// Token store backends.
const (
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete service configuration.
type Config struct {
	Port           int           `env:"PORT" envDefault:"5000"`
	TokenStore     string        `env:"TOKEN_STORE" envDefault:"redis"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	StatsCacheTTL  time.Duration `env:"STATS_CACHE_TTL" envDefault:"5s"`
	StatsSchedule  string        `env:"STATS_SCHEDULE" envDefault:"0 * * * *"`

	Jobs    JobsConfig
	DB      db.Config
	Redis   redis.Config
	Storage storage.Config
	Log     logger.Config
	Mailer  mailer.Config
	Resend  resend.Config
}

// JobsConfig sizes the background worker pools.
type JobsConfig struct {
	FilesWorkers int `env:"JOBS_FILES_WORKERS" envDefault:"4"`
	UsersWorkers int `env:"JOBS_USERS_WORKERS" envDefault:"2"`
	MaxWorkers   int `env:"JOBS_MAX_WORKERS" envDefault:"10"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Load reads the given .env files, when they exist, and parses the environment.
// Variables already set in the environment win over .env values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.TokenStore {
	case TokenStoreRedis, TokenStoreMemory:
	default:
		return fmt.Errorf("%w: TOKEN_STORE must be %q or %q, got %q", ErrInvalidConfig, TokenStoreRedis, TokenStoreMemory, c.TokenStore)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: PORT out of range: %d", ErrInvalidConfig, c.Port)
	}
	return nil
}
