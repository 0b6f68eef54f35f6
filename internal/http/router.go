package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.BookRepo)
	if cfg.MetadataEnricher != nil {
		booksController.SetEnricher(cfg.MetadataEnricher)
	}
	if cfg.StatsCache != nil {
		booksController.SetStatsCache(cfg.StatsCache)
	}
	sessionsController := NewSessionsController(cfg.ReadingService)
	progressController := NewProgressController(cfg.ProgressLogger, cfg.ProgressRepo)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Books API endpoints
	router.GET("/api/books", booksController.GetAllBooks)
	router.POST("/api/books", booksController.CreateBook)
	router.GET("/api/books/:id", booksController.GetBookByID)
	router.PATCH("/api/books/:id", booksController.UpdateBook)

	// Metadata enrichment endpoints
	if cfg.MetadataEnricher != nil {
		router.POST("/api/books/:id/enrich", booksController.EnrichBook)
	}

	// Cached per-book stats
	if cfg.StatsCache != nil {
		router.GET("/api/books/:id/stats", booksController.GetBookStats)
	}

	// Reading session lifecycle endpoints
	router.POST("/api/books/:id/status", sessionsController.UpdateStatus)
	router.POST("/api/books/:id/dnf", sessionsController.MarkAsDNF)
	router.POST("/api/books/:id/reread", sessionsController.StartReread)
	router.GET("/api/books/:id/sessions", sessionsController.GetSessions)
	router.GET("/api/books/:id/sessions/active", sessionsController.GetActiveSession)
	router.PATCH("/api/sessions/:id/date", sessionsController.UpdateSessionDate)

	// Progress endpoints
	router.POST("/api/books/:id/progress", progressController.LogProgress)
	router.GET("/api/sessions/:id/progress", progressController.GetSessionProgress)

	// Reading streak endpoints
	if cfg.StreakService != nil {
		streakController := NewStreakController(cfg.StreakService)
		router.GET("/api/streak", streakController.GetStreak)
		router.POST("/api/streak/rebuild", streakController.RebuildStreak)
	}

	return router
}
