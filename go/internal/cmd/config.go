package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mcdev12/lotterydash/go/clients/lottery_api_client"
	"github.com/mcdev12/lotterydash/go/internal/cache"
	"github.com/mcdev12/lotterydash/go/internal/dbconfig"
	"github.com/rs/zerolog"
)

// Poll interval bounds accepted by the service
const (
	minPollInterval = 60 * time.Second
	maxPollInterval = 120 * time.Second
)

type Config struct {
	Port            string        `env:"PORT"               envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL"          envDefault:"info"`
	ResultsBaseURL  string        `env:"RESULTS_BASE_URL"   envDefault:"http://localhost:5000"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"    envDefault:"30s"`
	PollInterval    time.Duration `env:"POLL_INTERVAL"      envDefault:"60s"`
	ManualRefresh   time.Duration `env:"MANUAL_REFRESH_MIN" envDefault:"2s"`
	CatalogPath     string        `env:"CATALOG_PATH"`
	ScheduleFromAPI bool          `env:"SCHEDULE_FROM_API"  envDefault:"false"`

	CacheBackend  string `env:"CACHE_BACKEND"  envDefault:"file"`
	CacheDir      string `env:"CACHE_DIR"      envDefault:".cache/lotterydash"`
	SQLitePath    string `env:"SQLITE_PATH"    envDefault:"lotterydash.db"`
	PostgresDSN   string `env:"POSTGRES_DSN"`
	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"lotterydash"`
	NATSBucket    string `env:"NATS_BUCKET"    envDefault:"lottery_results"`

	// NATSURL enables update events; it is required by the nats cache backend
	NATSURL     string `env:"NATS_URL"`
	NATSSubject string `env:"NATS_SUBJECT" envDefault:"lottery.results.updated"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ResultsBaseURL == "" {
		cfg.ResultsBaseURL = lottery_api_client.DefaultBaseURL
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.PollInterval < minPollInterval || c.PollInterval > maxPollInterval {
		return fmt.Errorf("POLL_INTERVAL must be between %s and %s, got %s", minPollInterval, maxPollInterval, c.PollInterval)
	}
	if c.ManualRefresh < 0 {
		return fmt.Errorf("MANUAL_REFRESH_MIN must not be negative, got %s", c.ManualRefresh)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.CacheBackend == cache.BackendNATS && c.NATSURL == "" {
		return fmt.Errorf("NATS_URL is required for the nats cache backend")
	}
	return nil
}

func (c Config) logLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// cacheConfig maps the environment onto the cache backend settings. The
// postgres backend falls back to the DB_* variables when POSTGRES_DSN is unset.
func (c Config) cacheConfig() (cache.Config, error) {
	cfg := cache.Config{
		Backend:       c.CacheBackend,
		Dir:           c.CacheDir,
		SQLitePath:    c.SQLitePath,
		PostgresDSN:   c.PostgresDSN,
		MongoURI:      c.MongoURI,
		MongoDatabase: c.MongoDatabase,
		NATSURL:       c.NATSURL,
		NATSBucket:    c.NATSBucket,
	}
	if cfg.Backend == cache.BackendPostgres && cfg.PostgresDSN == "" {
		dbCfg, err := dbconfig.NewConfigFromEnv()
		if err != nil {
			return cache.Config{}, err
		}
		cfg.PostgresDSN = dbCfg.DSN()
	}
	return cfg, nil
}
