package app

import (
	"time"

	"github.com/quirkauto/advisorcopilot/pkg/catalog"
	"github.com/quirkauto/advisorcopilot/pkg/environment"
	"github.com/quirkauto/advisorcopilot/pkg/httpserver"
	"github.com/quirkauto/advisorcopilot/pkg/logger"
	"github.com/quirkauto/advisorcopilot/pkg/ratelimiter"
	"github.com/quirkauto/advisorcopilot/pkg/session"
	"github.com/quirkauto/advisorcopilot/pkg/validator"
)

// Catalog backends.
const (
	BackendMemory     = "memory"
	BackendPostgres   = "postgres"
	BackendOpenSearch = "opensearch"
	BackendRedis      = "redis"
)

// Config is the application configuration. Backend connection settings
// (pg.Config, redis.Config, opensearch.Config) are loaded only when the
// matching backend is selected.
type Config struct {
	Name string `env:"APP_NAME" envDefault:"advisor-copilot"`
	environment.Config

	CatalogBackend  string `env:"CATALOG_BACKEND" envDefault:"memory"`
	CatalogSeedFile string `env:"CATALOG_SEED_FILE"`
	CatalogCache    bool   `env:"CATALOG_CACHE_ENABLED" envDefault:"true"`
	Cache           catalog.CacheConfig
	Index           catalog.OpenSearchConfig

	HistoryBackend     string        `env:"HISTORY_BACKEND" envDefault:"memory"`
	HistorySize        int           `env:"HISTORY_SIZE" envDefault:"5"`
	HistoryMaxSessions int           `env:"HISTORY_MAX_SESSIONS" envDefault:"10000"`
	HistoryTTL         time.Duration `env:"HISTORY_TTL" envDefault:"24h"`

	MinKnownVINChars int `env:"COPILOT_MIN_KNOWN_VIN_CHARS" envDefault:"8"`

	RateLimitBackend string `env:"RATE_LIMIT_BACKEND" envDefault:"memory"`
	RateLimit        ratelimiter.Config

	Log     logger.Config
	HTTP    httpserver.Config
	Session session.Config
}

// Validate rejects unknown backends and nonsensical sizes.
func (c Config) Validate() error {
	return validator.Apply(
		validator.OneOf("CATALOG_BACKEND", c.CatalogBackend, BackendMemory, BackendPostgres, BackendOpenSearch),
		validator.OneOf("HISTORY_BACKEND", c.HistoryBackend, BackendMemory, BackendRedis),
		validator.OneOf("RATE_LIMIT_BACKEND", c.RateLimitBackend, BackendMemory, BackendRedis),
		validator.Between("HISTORY_SIZE", c.HistorySize, 1, 100),
		validator.Between("COPILOT_MIN_KNOWN_VIN_CHARS", c.MinKnownVINChars, 1, 17),
		validator.When(c.RateLimit.Enabled, validator.Between("RATE_LIMIT_BURST", c.RateLimit.Capacity, 1, 10000)),
		validator.When(c.RateLimit.Enabled, validator.Between("RATE_LIMIT_REFILL", c.RateLimit.RefillRate, 1, 10000)),
	)
}
