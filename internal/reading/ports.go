package reading

import (
	"context"

	"github.com/masonfox/tome-sub001/internal/entities"
)

// BookStore provides access to book records.
type BookStore interface {
	FindByID(id uint) (*entities.Book, error)
	UpdateRating(id uint, rating *float64) error
}

// SessionStore provides access to reading-session records.
type SessionStore interface {
	Create(session *entities.ReadingSession) error
	FindByID(id uint) (*entities.ReadingSession, error)
	Save(session *entities.ReadingSession) error
	FindActiveForBook(bookID uint) (*entities.ReadingSession, error)
	FindAllForBook(bookID uint) ([]entities.ReadingSession, error)
	MaxSessionNumber(bookID uint) (int, error)
	HasFinished(bookID uint) (bool, error)
	ArchiveAndCreate(old, next *entities.ReadingSession) error
}

// ProgressStore provides access to progress log entries.
type ProgressStore interface {
	Create(entry *entities.ProgressLog) error
	FindMostRecentForSession(sessionID uint) (*entities.ProgressLog, error)
	CountForSession(sessionID uint) (int64, error)
}

// RatingSyncer pushes a rating to the external catalog. Invoked
// best-effort; failures never abort the primary transition.
type RatingSyncer interface {
	SyncRating(ctx context.Context, book *entities.Book, rating float64) error
}

// StreakRebuilder recomputes the reading-day streak counters. Best-effort.
type StreakRebuilder interface {
	Recompute() error
}

// CacheInvalidator drops cached derived data for a book. Best-effort.
type CacheInvalidator interface {
	Invalidate(bookID uint) error
}
