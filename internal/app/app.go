package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	goredis "github.com/redis/go-redis/v9"

	"github.com/quirkauto/advisorcopilot/handler"
	copilotmod "github.com/quirkauto/advisorcopilot/modules/copilot"
	"github.com/quirkauto/advisorcopilot/pkg/catalog"
	"github.com/quirkauto/advisorcopilot/pkg/clientip"
	"github.com/quirkauto/advisorcopilot/pkg/config"
	"github.com/quirkauto/advisorcopilot/pkg/environment"
	"github.com/quirkauto/advisorcopilot/pkg/history"
	"github.com/quirkauto/advisorcopilot/pkg/httpserver"
	"github.com/quirkauto/advisorcopilot/pkg/logger"
	"github.com/quirkauto/advisorcopilot/pkg/opensearch"
	"github.com/quirkauto/advisorcopilot/pkg/pg"
	"github.com/quirkauto/advisorcopilot/pkg/ratelimiter"
	"github.com/quirkauto/advisorcopilot/pkg/redis"
	"github.com/quirkauto/advisorcopilot/pkg/requestid"
	"github.com/quirkauto/advisorcopilot/pkg/session"
	"github.com/quirkauto/advisorcopilot/svc/copilot"
)

// Importer is implemented by catalogs that can load a seed.
type Importer interface {
	Import(ctx context.Context, seed catalog.Seed) error
}

// App holds the wired application.
type App struct {
	Config  Config
	Log     *slog.Logger
	Catalog catalog.Catalog
	History history.Store
	Service *copilot.Service
	Probes  []httpserver.Probe
	// Limiter is nil when rate limiting is disabled.
	Limiter *ratelimiter.Limiter

	// importer is the uncached catalog backend.
	importer Importer
	redis    *goredis.Client
	closers  []func()
}

// LoadConfig reads Config from the environment and .env and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Join(config.ErrParsingConfig, err)
	}
	return cfg, nil
}

// NewLogger builds the process logger for cfg.
func NewLogger(cfg Config) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(string(cfg.Environment()), cfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			session.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	}
	extra, err := logger.FromConfig(cfg.Log)
	if err != nil {
		return nil, err
	}
	return logger.New(append(opts, extra...)...), nil
}

// New connects the configured backends. Close releases them.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	a := &App{Config: cfg, Log: log}

	if err := a.openCatalog(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openHistory(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openLimiter(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.Service = copilot.New(a.Catalog, a.History,
		copilot.WithLogger(log),
		copilot.WithMinKnownVINChars(cfg.MinKnownVINChars),
	)
	log.InfoContext(ctx, "application ready",
		logger.Backend(cfg.CatalogBackend),
		slog.String("history_backend", cfg.HistoryBackend),
	)
	return a, nil
}

// Close releases backend connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Handler returns the HTTP router for the app.
func (a *App) Handler() http.Handler {
	return copilotmod.Router(copilotmod.RouterOptions{
		API:         copilotmod.NewAPI(a.Service, handler.NewErrorHandler(a.Log)),
		Sessions:    session.NewFromConfig(a.Config.Session),
		Environment: a.Config.Environment(),
		Logger:      a.Log,
		Probes:      a.Probes,
		RateLimiter: a.Limiter,
	})
}

// Seed loads seed into the catalog backend. For the memory backend the
// contents are replaced.
func (a *App) Seed(ctx context.Context, seed catalog.Seed) error {
	if a.importer == nil {
		return fmt.Errorf("catalog backend %q does not support seeding", a.Config.CatalogBackend)
	}
	return a.importer.Import(ctx, seed)
}

func (a *App) seed() (catalog.Seed, bool, error) {
	if a.Config.CatalogSeedFile == "" {
		return catalog.DemoSeed(), false, nil
	}
	seed, err := catalog.LoadSeedFile(a.Config.CatalogSeedFile)
	return seed, true, err
}

func (a *App) openCatalog(ctx context.Context) error {
	seed, fromFile, err := a.seed()
	if err != nil {
		return err
	}

	var backend catalog.Catalog
	switch a.Config.CatalogBackend {
	case BackendMemory:
		mem := catalog.NewMemory(seed)
		a.importer = memoryImporter{mem}
		a.Catalog = mem
		return nil

	case BackendPostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, pool.Close)
		if pgCfg.AutoMigrate {
			if err := pg.Migrate(ctx, pool, catalog.Migrations, catalog.MigrationsDir, pgCfg, a.Log); err != nil {
				return err
			}
		}
		db := pg.OpenDB(pool)
		a.closers = append(a.closers, func() { _ = db.Close() })
		pgCat := catalog.NewPostgres(db)
		a.importer = pgCat
		a.Probes = append(a.Probes, httpserver.Probe{Name: "postgres", Check: pg.Healthcheck(pool)})
		backend = pgCat

	case BackendOpenSearch:
		var osCfg opensearch.Config
		if err := config.Load(&osCfg); err != nil {
			return err
		}
		client, err := opensearch.New(ctx, osCfg)
		if err != nil {
			return err
		}
		osCat := catalog.NewOpenSearch(client, a.Config.Index)
		if err := osCat.EnsureIndices(ctx); err != nil {
			return err
		}
		a.importer = osCat
		a.Probes = append(a.Probes, httpserver.Probe{Name: "opensearch", Check: opensearch.Healthcheck(client)})
		backend = osCat
	}

	if fromFile {
		if err := a.importer.Import(ctx, seed); err != nil {
			return err
		}
		a.Log.InfoContext(ctx, "catalog seeded",
			logger.Backend(a.Config.CatalogBackend),
			slog.String("file", a.Config.CatalogSeedFile),
			logger.Results(len(seed.Parts)+len(seed.Upsell)),
		)
	}

	if a.Config.CatalogCache {
		backend = catalog.NewCached(backend, a.Config.Cache)
	}
	a.Catalog = backend
	return nil
}

func (a *App) openHistory(ctx context.Context) error {
	if a.Config.HistoryBackend != BackendRedis {
		a.History = history.NewMemoryStore(
			history.WithSize(a.Config.HistorySize),
			history.WithMaxSessions(a.Config.HistoryMaxSessions),
		)
		return nil
	}
	client, err := a.redisClient(ctx)
	if err != nil {
		return err
	}
	a.History = history.NewRedisStore(client,
		history.WithRedisSize(a.Config.HistorySize),
		history.WithTTL(a.Config.HistoryTTL),
	)
	return nil
}

func (a *App) openLimiter(ctx context.Context) error {
	if !a.Config.RateLimit.Enabled {
		return nil
	}
	var store ratelimiter.Store
	if a.Config.RateLimitBackend == BackendRedis {
		client, err := a.redisClient(ctx)
		if err != nil {
			return err
		}
		store = ratelimiter.NewRedisStore(client)
	} else {
		store = ratelimiter.NewMemoryStore()
	}
	limiter, err := ratelimiter.New(store, a.Config.RateLimit)
	if err != nil {
		return err
	}
	a.Limiter = limiter
	return nil
}

// redisClient connects on first use; history and rate limiting share it.
func (a *App) redisClient(ctx context.Context) (*goredis.Client, error) {
	if a.redis != nil {
		return a.redis, nil
	}
	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err != nil {
		return nil, err
	}
	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return nil, err
	}
	a.redis = client
	a.closers = append(a.closers, func() { _ = client.Close() })
	a.Probes = append(a.Probes, httpserver.Probe{Name: "redis", Check: redis.Healthcheck(client)})
	return client, nil
}

type memoryImporter struct{ mem *catalog.Memory }

func (m memoryImporter) Import(_ context.Context, seed catalog.Seed) error {
	if err := seed.Validate(); err != nil {
		return err
	}
	m.mem.Replace(seed)
	return nil
}
