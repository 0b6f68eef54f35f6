package http

import (
	"github.com/masonfox/tome-sub001/internal/database"
	"github.com/masonfox/tome-sub001/internal/database/books"
	"github.com/masonfox/tome-sub001/internal/database/progress"
	"github.com/masonfox/tome-sub001/internal/metadata"
	"github.com/masonfox/tome-sub001/internal/reading"
	"github.com/masonfox/tome-sub001/internal/statscache"
	"github.com/masonfox/tome-sub001/internal/streaks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces the long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database       *database.Database
	BookRepo       *books.Repository
	ProgressRepo   *progress.Repository
	ReadingService *reading.Service
	ProgressLogger *reading.ProgressLogger
	StreakService  *streaks.Service

	// Optional collaborators
	MetadataEnricher *metadata.Enricher
	StatsCache       *statscache.Cache

	// Application info
	Version string
}
