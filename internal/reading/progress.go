package reading

import (
	"fmt"
	"math"
	"time"

	"github.com/masonfox/tome-sub001/internal/entities"
)

// LogProgressInput carries one progress measurement. Either a page or a
// percentage must be supplied; the date defaults to today.
type LogProgressInput struct {
	CurrentPage       *int           `json:"current_page,omitempty"`
	CurrentPercentage *float64       `json:"current_percentage,omitempty"`
	ProgressDate      *entities.Date `json:"progress_date,omitempty"`
	Notes             string         `json:"notes,omitempty"`
}

// LogProgressResult reports the persisted entry. ShouldShowCompletionModal
// signals that the position reached 100%: the caller collects rating/review
// and then invokes UpdateStatus with status "read" and this entry's date as
// the completion date, so backdated logging completes on the logged day.
type LogProgressResult struct {
	ProgressLog               *entities.ProgressLog `json:"progress_log"`
	ShouldShowCompletionModal bool                  `json:"should_show_completion_modal"`
}

// ProgressLogger is the progress-logging orchestrator. It persists entries
// against the book's active session and detects the completion condition,
// but never transitions status itself; the completion handoff stays a
// signal to the caller.
type ProgressLogger struct {
	books    BookStore
	sessions SessionStore
	progress ProgressStore

	streaks StreakRebuilder
	cache   CacheInvalidator

	now func() time.Time
}

// NewProgressLogger creates a progress orchestrator over the three stores.
func NewProgressLogger(books BookStore, sessions SessionStore, progress ProgressStore) *ProgressLogger {
	return &ProgressLogger{
		books:    books,
		sessions: sessions,
		progress: progress,
		now:      time.Now,
	}
}

// SetStreakRebuilder sets the streak recompute collaborator (optional).
func (p *ProgressLogger) SetStreakRebuilder(streaks StreakRebuilder) {
	p.streaks = streaks
}

// SetCacheInvalidator sets the cache invalidation collaborator (optional).
func (p *ProgressLogger) SetCacheInvalidator(cache CacheInvalidator) {
	p.cache = cache
}

// SetClock overrides the time source. Used by tests.
func (p *ProgressLogger) SetClock(now func() time.Time) {
	p.now = now
}

// LogProgress records one measurement against the book's active session.
func (p *ProgressLogger) LogProgress(bookID uint, in LogProgressInput) (*LogProgressResult, error) {
	book, err := p.books.FindByID(bookID)
	if err != nil {
		return nil, fmt.Errorf("load book: %w", err)
	}
	if book == nil {
		return nil, notFound("Book not found")
	}

	active, err := p.sessions.FindActiveForBook(bookID)
	if err != nil {
		return nil, fmt.Errorf("load active session: %w", err)
	}
	if active == nil {
		return nil, notFound("No active reading session found for this book")
	}

	page, percentage, err := resolvePosition(book, in)
	if err != nil {
		return nil, err
	}

	date := entities.NewDate(p.now())
	if in.ProgressDate != nil {
		date = *in.ProgressDate
	}

	entry := &entities.ProgressLog{
		BookID:            bookID,
		SessionID:         active.ID,
		CurrentPage:       page,
		CurrentPercentage: percentage,
		ProgressDate:      date,
		Notes:             in.Notes,
	}
	if err := p.progress.Create(entry); err != nil {
		return nil, fmt.Errorf("create progress entry: %w", err)
	}

	if p.streaks != nil {
		runBestEffort("streak recompute", p.streaks.Recompute)
	}
	if p.cache != nil {
		runBestEffort("cache invalidation", func() error {
			return p.cache.Invalidate(bookID)
		})
	}

	return &LogProgressResult{
		ProgressLog:               entry,
		ShouldShowCompletionModal: percentage >= 100,
	}, nil
}

// resolvePosition normalizes a measurement into a (page, percentage) pair.
// A given percentage wins; otherwise the percentage is derived from the
// page against the book's total page count.
func resolvePosition(book *entities.Book, in LogProgressInput) (int, float64, error) {
	totalPages := 0
	if book.TotalPages != nil {
		totalPages = *book.TotalPages
	}

	if in.CurrentPercentage != nil {
		pct := *in.CurrentPercentage
		if pct < 0 || pct > 100 {
			return 0, 0, validation("Percentage must be between 0 and 100")
		}
		page := 0
		if in.CurrentPage != nil {
			page = *in.CurrentPage
		} else if totalPages > 0 {
			page = int(math.Round(pct / 100 * float64(totalPages)))
		}
		return page, roundPercentage(pct), nil
	}

	if in.CurrentPage == nil {
		return 0, 0, validation("Either current_page or current_percentage is required")
	}

	page := *in.CurrentPage
	if page < 0 {
		return 0, 0, validation("Current page cannot be negative")
	}
	if totalPages <= 0 {
		return 0, 0, validation("Cannot compute percentage: book has no total page count")
	}
	if page > totalPages {
		return 0, 0, validation("Current page cannot exceed total pages")
	}

	return page, roundPercentage(float64(page) / float64(totalPages) * 100), nil
}

func roundPercentage(pct float64) float64 {
	return math.Round(pct*10) / 10
}
