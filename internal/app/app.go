package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sourcegraph/conc/pool"

	"github.com/bolao-app/bolao-api/external/footballdata"
	"github.com/bolao-app/bolao-api/external/jobqueue"
	"github.com/bolao-app/bolao-api/internal/config"
	"github.com/bolao-app/bolao-api/internal/infrastructure/account/supabase"
	"github.com/bolao-app/bolao-api/internal/infrastructure/repository/postgres"
	"github.com/bolao-app/bolao-api/internal/interfaces/httpapi"
	"github.com/bolao-app/bolao-api/internal/observability"
	"github.com/bolao-app/bolao-api/internal/platform/cache"
	"github.com/bolao-app/bolao-api/internal/platform/logging"
	"github.com/bolao-app/bolao-api/internal/platform/resilience"
	"github.com/bolao-app/bolao-api/internal/usecase"
)

const (
	principalCacheMaxEntries = 4096

	qstashPublishTimeout = 10 * time.Second
)

// App owns every long-lived component: the HTTP server plus the database
// handle and the observability exporters that must be flushed on exit.
type App struct {
	Config config.Config
	Logger *logging.Logger
	Server *http.Server

	db            *sqlx.DB
	pprofServer   *http.Server
	stopUptrace   func(context.Context) error
	stopPyroscope func() error
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	stopUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	pprofServer, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("start pprof server: %w", err)
	}

	db, err := openDB(cfg, logger)
	if err != nil {
		return nil, err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	fixtureRepo := postgres.NewFixtureRepository(db)
	predictionRepo := postgres.NewPredictionRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	leaderboardRepo := postgres.NewLeaderboardRepository(db)

	footballClient := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:    cfg.FootballBaseURL,
		APIKey:     cfg.FootballAPIKey,
		Timeout:    cfg.FootballTimeout,
		MaxRetries: cfg.FootballMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballCircuitEnabled,
			FailureThreshold: cfg.FootballCircuitFailureCount,
			OpenTimeout:      cfg.FootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballCircuitHalfOpenMaxReq,
		},
	})

	verifier := newTokenVerifier(cfg, logger)
	notifier := newLiveNotifier(cfg, logger)

	syncService := usecase.NewFixtureSyncService(footballClient, fixtureRepo, usecase.FixtureSyncConfig{
		TeamID:    cfg.FootballTeamID,
		Season:    cfg.FootballSeason,
		NextCount: cfg.SyncNextCount,
		Timezone:  cfg.SyncTimezone,
	}, store, logger)
	liveService := usecase.NewLiveUpdateService(footballClient, fixtureRepo, usecase.LiveUpdateConfig{
		LeadWindow: cfg.LiveLeadWindow,
		MaxWorkers: cfg.LiveMaxWorkers,
	}, store, notifier, logger)
	predictionService := usecase.NewPredictionService(predictionRepo, fixtureRepo, usecase.PredictionConfig{
		StrictLock: cfg.PredictionStrictLock,
	}, store, logger)
	fixtureService := usecase.NewFixtureQueryService(fixtureRepo, store, logger)
	leaderboardService := usecase.NewLeaderboardService(leaderboardRepo, profileRepo, usecase.LeaderboardConfig{
		Limit: cfg.LeaderboardLimit,
	}, store, logger)

	handler := httpapi.NewHandler(syncService, liveService, predictionService, fixtureService, leaderboardService, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Config:        cfg,
		Logger:        logger,
		Server:        server,
		db:            db,
		pprofServer:   pprofServer,
		stopUptrace:   stopUptrace,
		stopPyroscope: stopPyroscope,
	}, nil
}

func newTokenVerifier(cfg config.Config, logger *logging.Logger) httpapi.TokenVerifier {
	client := supabase.NewClient(supabase.ClientConfig{
		BaseURL: cfg.SupabaseAuthURL,
		AnonKey: cfg.SupabaseAnonKey,
		Timeout: cfg.SupabaseTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SupabaseCircuitEnabled,
			FailureThreshold: cfg.SupabaseCircuitFailureCount,
			OpenTimeout:      cfg.SupabaseCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SupabaseCircuitHalfOpenMaxReq,
		},
	})

	var ttl time.Duration
	if cfg.CacheEnabled {
		ttl = cfg.CacheTTL
	}

	return supabase.NewCachingVerifier(client, ttl, principalCacheMaxEntries)
}

// newLiveNotifier builds the QStash-backed scheduler for follow-up live
// sweeps. With QStash disabled the notifier is a no-op and live coverage
// relies on the external cron cadence alone.
func newLiveNotifier(cfg config.Config, logger *logging.Logger) usecase.LiveJobNotifier {
	var publisher *jobqueue.QStashPublisher
	if cfg.QStashEnabled {
		publisher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			Timeout:          qstashPublishTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	return jobqueue.NewLiveCheckNotifier(publisher, "", cfg.JobLiveInterval, logger)
}

// Shutdown flushes and closes everything except the HTTP listener, which the
// caller drains first. Closers run concurrently; the first error wins.
func (a *App) Shutdown(ctx context.Context) error {
	p := pool.New().WithErrors()

	p.Go(func() error {
		return observability.StopPprofServer(a.pprofServer, a.Logger, 5*time.Second)
	})
	if a.stopPyroscope != nil {
		p.Go(func() error {
			return a.stopPyroscope()
		})
	}
	if a.stopUptrace != nil {
		p.Go(func() error {
			return a.stopUptrace(ctx)
		})
	}
	if a.db != nil {
		p.Go(func() error {
			return a.db.Close()
		})
	}

	return p.Wait()
}
