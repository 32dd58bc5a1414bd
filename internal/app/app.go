package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cardinalbotics/scouting-backend/external/bluealliance"
	"github.com/cardinalbotics/scouting-backend/internal/config"
	"github.com/cardinalbotics/scouting-backend/internal/domain/pitscouting"
	"github.com/cardinalbotics/scouting-backend/internal/infrastructure/repository/memory"
	"github.com/cardinalbotics/scouting-backend/internal/infrastructure/repository/postgres"
	"github.com/cardinalbotics/scouting-backend/internal/interfaces/httpapi"
	"github.com/cardinalbotics/scouting-backend/internal/platform/cache"
	"github.com/cardinalbotics/scouting-backend/internal/platform/id"
	"github.com/cardinalbotics/scouting-backend/internal/platform/logging"
	"github.com/cardinalbotics/scouting-backend/internal/platform/metrics"
	"github.com/cardinalbotics/scouting-backend/internal/platform/resilience"
	"github.com/cardinalbotics/scouting-backend/internal/usecase"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const dbPingTimeout = 5 * time.Second

// App holds the wired HTTP server and the background prefetch warmer.
type App struct {
	Server   *http.Server
	Prefetch *usecase.PrefetchService
	Cache    *cache.Store
	db       *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	recorder := metrics.NewRecorder()
	store := cache.NewStore(cache.Policy{
		DefaultTTL:        cfg.CacheDefaultTTL,
		ErrorTTL:          cfg.CacheErrorTTL,
		UncacheableStatus: cfg.CacheUncacheableStatus,
		MaxStale:          cfg.CacheMaxStale,
		MaxEntries:        cfg.CacheMaxEntries,
	}, cache.WithMetrics(recorder))

	client := bluealliance.NewClient(bluealliance.ClientConfig{
		BaseURL:    cfg.TBABaseURL,
		APIKey:     cfg.TBAAPIKey,
		Timeout:    cfg.TBATimeout,
		MaxRetries: cfg.TBAMaxRetries,
		Cache:      store,
		Logger:     logger,
		Metrics:    recorder,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.TBACircuitEnabled,
			FailureThreshold: cfg.TBACircuitFailureCount,
			OpenTimeout:      cfg.TBACircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.TBACircuitHalfOpenMaxReq,
		},
	})

	pitRepo, db, err := newPitScoutingRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	blueAllianceSvc := usecase.NewBlueAllianceService(client, pitRepo, usecase.BlueAllianceConfig{
		Region: cfg.TBAState,
	}, logger, recorder)
	prefetchSvc := usecase.NewPrefetchService(client, usecase.PrefetchConfig{
		Workers: cfg.PrefetchWorkers,
		Region:  cfg.TBAState,
	}, logger, recorder)

	handler := httpapi.NewHandler(blueAllianceSvc, logger)
	router := httpapi.NewRouter(handler, logger, recorder, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsEnabled:     cfg.MetricsEnabled,
		IDGenerator:        id.NewUUIDGenerator(),
	})

	return &App{
		Server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		Prefetch: prefetchSvc,
		Cache:    store,
		db:       db,
	}, nil
}

// Close releases the database handle, if any.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// newPitScoutingRepository opens Postgres when DB_URL is set and falls back to
// an in-memory store otherwise. An unreachable database is not fatal: lookups
// degrade to "nothing scouted" at request time.
func newPitScoutingRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (pitscouting.Repository, *sqlx.DB, error) {
	if cfg.DBURL == "" {
		logger.Info("pit scouting lookups use in-memory store", "reason", "DB_URL empty")
		return memory.NewPitScoutingRepository(), nil, nil
	}

	target := resolvePostgresTarget(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", target.DSN,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(target.DBName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open pit scouting database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Warn("pit scouting database unreachable at startup", "db_name", target.DBName, "error", err)
	} else {
		logger.Info("pit scouting database connected", "db_name", target.DBName)
	}

	return postgres.NewPitScoutingRepository(db), db, nil
}
