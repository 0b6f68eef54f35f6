package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/masonfox/tome-sub001/internal/config"
	"github.com/masonfox/tome-sub001/internal/database"
	"github.com/masonfox/tome-sub001/internal/database/books"
	"github.com/masonfox/tome-sub001/internal/database/progress"
	"github.com/masonfox/tome-sub001/internal/database/sessions"
	"github.com/masonfox/tome-sub001/internal/database/settings"
	"github.com/masonfox/tome-sub001/internal/hardcover"
	http_controllers "github.com/masonfox/tome-sub001/internal/http"
	"github.com/masonfox/tome-sub001/internal/metadata"
	"github.com/masonfox/tome-sub001/internal/reading"
	"github.com/masonfox/tome-sub001/internal/scheduler"
	"github.com/masonfox/tome-sub001/internal/statscache"
	"github.com/masonfox/tome-sub001/internal/streaks"
	"github.com/masonfox/tome-sub001/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Tome v%s", version)

	if cfg.Hardcover.Token == "" {
		log.Printf("WARNING: Hardcover token is not set. Rating sync will be disabled. Set 'HARDCOVER_TOKEN' environment variable to enable.")
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	bookRepo := books.NewRepository(db.DB)
	sessionRepo := sessions.NewRepository(db.DB)
	progressRepo := progress.NewRepository(db.DB)
	settingsRepo := settings.NewRepository(db.DB)

	// Create per-book stats cache over the session and progress stores
	statsComputer := statscache.NewStoreComputer(sessionRepo, progressRepo)
	statsCache, err := statscache.NewCache(cfg.StatsCache.Dir, statsComputer)
	if err != nil {
		log.Printf("WARNING: Failed to initialize stats cache: %v", err)
		statsCache = nil
	} else {
		log.Printf("Stats cache initialized at %s", cfg.StatsCache.Dir)
	}

	// Create Hardcover rating syncer if a token is configured
	var hardcoverClient *hardcover.Client
	var ratingSyncer *hardcover.Syncer
	if cfg.Hardcover.Token != "" {
		hardcoverClient = hardcover.NewClient(cfg.Hardcover.Token)
		ratingSyncer = hardcover.NewSyncer(hardcoverClient)
	}

	// Initialize task queue if enabled; failed rating syncs are retried
	// through it instead of being dropped
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled && hardcoverClient != nil {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewSyncRatingQueue(hardcoverClient),
		)
		ratingSyncer.SetRetryEnqueuer(taskClient)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Reading streak service over distinct progress dates
	streakService := streaks.NewService(progressRepo, settingsRepo)

	// Session lifecycle service with its optional collaborators
	readingService := reading.NewService(bookRepo, sessionRepo, progressRepo)
	if ratingSyncer != nil {
		readingService.SetRatingSyncer(ratingSyncer)
	}
	readingService.SetStreakRebuilder(streakService)
	if statsCache != nil {
		readingService.SetCacheInvalidator(statsCache)
	}

	progressLogger := reading.NewProgressLogger(bookRepo, sessionRepo, progressRepo)
	progressLogger.SetStreakRebuilder(streakService)
	if statsCache != nil {
		progressLogger.SetCacheInvalidator(statsCache)
	}

	// Create metadata enricher for page-count and cover backfill from OpenLibrary
	openLibraryClient := metadata.NewOpenLibraryClient()
	metadataEnricher := metadata.NewEnricher(openLibraryClient, bookRepo)
	if statsCache != nil {
		metadataEnricher.SetCacheInvalidator(statsCache)
	}

	// Nightly streak rebuild so a lapsed streak resets without traffic
	var streakScheduler *scheduler.StreakRebuildScheduler
	if cfg.StreakRebuild.Enabled {
		streakScheduler = scheduler.NewStreakRebuildScheduler(streakService, cfg.StreakRebuild.Schedule)
		if err := streakScheduler.Start(context.Background()); err != nil {
			log.Printf("WARNING: Failed to start streak rebuild scheduler: %v", err)
			streakScheduler = nil
		}
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:         db,
		BookRepo:         bookRepo,
		ProgressRepo:     progressRepo,
		ReadingService:   readingService,
		ProgressLogger:   progressLogger,
		StreakService:    streakService,
		MetadataEnricher: metadataEnricher,
		StatsCache:       statsCache,
		Version:          version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if streakScheduler != nil {
			streakScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
