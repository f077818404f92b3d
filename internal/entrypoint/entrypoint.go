package entrypoint

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/ratings"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/metadata"
	"github.com/mrlokans/bookshelf/internal/resilience"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/summary"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Dur("timeout", timeout).Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (stops the scheduler and task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("server shutdown")
	}

	logging.Info().Msg("server exiting")
}

func Run(cfg *config.Config, version string) {
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Info().Str("version", version).Str("store", cfg.Store.Driver).Msg("starting bookshelf")

	var (
		bookStore   catalog.BookStore
		ratingStore catalog.RatingStore
		db          *database.Database
	)
	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		var err error
		db, err = database.NewDatabase(cfg.Store.DatabasePath)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to initialize database")
		}
		defer func() {
			if err := db.Close(); err != nil {
				logging.Error().Err(err).Msg("error closing database")
			}
		}()
		bookStore = books.NewRepository(db.DB)
		ratingStore = ratings.NewRepository(db.DB)
	default:
		bookStore = catalog.NewMemoryBookStore()
		ratingStore = catalog.NewMemoryRatingStore()
	}

	breaker := resilience.BreakerConfig{
		FailureThreshold: cfg.Providers.BreakerFailureThreshold,
		OpenTimeout:      cfg.Providers.BreakerOpenTimeout,
	}
	clientConfig := func(baseURL string) metadata.ClientConfig {
		return metadata.ClientConfig{
			BaseURL:       baseURL,
			Timeout:       cfg.Providers.Timeout,
			RatePerSecond: cfg.Providers.RatePerSecond,
			Breaker:       breaker,
		}
	}
	lookup := metadata.NewLookup(
		metadata.NewGoogleBooksClient(cfg.GoogleBooks.APIKey, clientConfig(cfg.GoogleBooks.BaseURL)),
		metadata.NewOpenLibraryClient(clientConfig(cfg.OpenLibrary.BaseURL)),
	)

	if cfg.Gemini.APIKey == "" {
		logging.Warn().Msg("GEMINI_KEY is not set; new books will have a missing summary")
	}
	summarizer := summary.NewGeminiClient(summary.Config{
		APIKey:        cfg.Gemini.APIKey,
		Model:         cfg.Gemini.Model,
		BaseURL:       cfg.Gemini.BaseURL,
		Timeout:       cfg.Providers.Timeout,
		RatePerSecond: cfg.Providers.RatePerSecond,
		Breaker:       breaker,
	})

	service := catalog.NewService(bookStore, ratingStore, lookup, summarizer)

	var auditor *audit.Auditor
	if cfg.Audit.Dir != "" {
		auditor = audit.NewAuditor(cfg.Audit.Dir)
		logging.Info().Str("dir", cfg.Audit.Dir).Msg("audit trail enabled")
	}

	// Summary work runs on the task queue when enabled, otherwise inline in the request.
	var (
		summaryQueue  http_controllers.SummaryQueue = tasks.NewInline(service)
		taskStatuses  http_controllers.TaskStatusReader
		backfill      scheduler.BackfillTrigger = tasks.NewInline(service)
		taskClient    *tasks.Client
		taskCtxCancel context.CancelFunc
	)
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		var err error
		taskClient, err = tasks.NewClient(cfg.Store.DatabasePath, taskCfg)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to initialize task queue")
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				logging.Error().Err(err).Msg("error closing task client")
			}
		}()

		taskClient.Register(
			tasks.NewRefreshSummaryQueue(service),
			tasks.NewBackfillSummariesQueue(service),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		summaryQueue = taskClient
		taskStatuses = taskClient
		backfill = taskClient
	}

	var backfillScheduler *scheduler.SummaryBackfillScheduler
	if cfg.SummaryBackfill.Enabled {
		backfillScheduler = scheduler.NewSummaryBackfillScheduler(backfill, cfg.SummaryBackfill.Schedule)
		if err := backfillScheduler.Start(context.Background()); err != nil {
			logging.Fatal().Err(err).Msg("failed to start summary backfill scheduler")
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Books:        service,
		Ratings:      service,
		Auditor:      auditor,
		Database:     db,
		StoreName:    cfg.Store.Driver,
		SummaryQueue: summaryQueue,
		TaskStatuses: taskStatuses,
		Version:      version,
	})

	onShutdown := func(ctx context.Context) {
		if backfillScheduler != nil {
			backfillScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
