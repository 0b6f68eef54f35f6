package statscache

import (
	"fmt"

	"github.com/masonfox/tome-sub001/internal/entities"
)

// SessionSource lists a book's session history.
type SessionSource interface {
	FindAllForBook(bookID uint) ([]entities.ReadingSession, error)
}

// ProgressSource reads the latest position in a session.
type ProgressSource interface {
	FindMostRecentForSession(sessionID uint) (*entities.ProgressLog, error)
}

// StoreComputer derives book stats from the session and progress stores.
type StoreComputer struct {
	sessions SessionSource
	progress ProgressSource
}

// NewStoreComputer creates a computer over the two stores.
func NewStoreComputer(sessions SessionSource, progress ProgressSource) *StoreComputer {
	return &StoreComputer{sessions: sessions, progress: progress}
}

// ComputeBookStats walks the book's sessions once.
func (c *StoreComputer) ComputeBookStats(bookID uint) (*BookStats, error) {
	sessions, err := c.sessions.FindAllForBook(bookID)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	stats := &BookStats{
		BookID:        bookID,
		TotalSessions: len(sessions),
	}

	for _, session := range sessions {
		switch session.Status {
		case entities.StatusRead:
			stats.TimesFinished++
		case entities.StatusDNF:
			stats.TimesAbandoned++
		}
		if session.IsActive {
			stats.ActiveStatus = session.Status
			last, err := c.progress.FindMostRecentForSession(session.ID)
			if err != nil {
				return nil, fmt.Errorf("load last progress: %w", err)
			}
			stats.LastProgress = last
		}
	}

	return stats, nil
}
