// Package reading implements the reading-session lifecycle engine and the
// progress-logging orchestrator.
//
// A book moves through sessions: one record per reading attempt, exactly one
// of which is active once any history exists. Forward status movement
// mutates the active session in place; backward movement over real progress,
// DNF re-attempts and re-reads archive the active session and open attempt
// N+1 inside a single transaction.
package reading

import (
	"context"
	"fmt"
	"time"

	"github.com/masonfox/tome-sub001/internal/entities"
)

// Service is the session lifecycle engine. It is stateless: all state lives
// behind the store ports, so a Service can be constructed per request or
// shared freely.
type Service struct {
	books    BookStore
	sessions SessionStore
	progress ProgressStore

	syncer  RatingSyncer
	streaks StreakRebuilder
	cache   CacheInvalidator

	now func() time.Time
}

// NewService creates a lifecycle engine over the three stores.
func NewService(books BookStore, sessions SessionStore, progress ProgressStore) *Service {
	return &Service{
		books:    books,
		sessions: sessions,
		progress: progress,
		now:      time.Now,
	}
}

// SetRatingSyncer sets the external catalog sync collaborator (optional).
func (s *Service) SetRatingSyncer(syncer RatingSyncer) {
	s.syncer = syncer
}

// SetStreakRebuilder sets the streak recompute collaborator (optional).
func (s *Service) SetStreakRebuilder(streaks StreakRebuilder) {
	s.streaks = streaks
}

// SetCacheInvalidator sets the cache invalidation collaborator (optional).
func (s *Service) SetCacheInvalidator(cache CacheInvalidator) {
	s.cache = cache
}

// SetClock overrides the time source. Used by tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// ActiveSession returns the book's active session, or nil when the book has
// no session history.
func (s *Service) ActiveSession(bookID uint) (*entities.ReadingSession, error) {
	if _, err := s.requireBook(bookID); err != nil {
		return nil, err
	}
	return s.sessions.FindActiveForBook(bookID)
}

// SessionsForBook returns every session for the book, newest attempt first.
func (s *Service) SessionsForBook(bookID uint) ([]entities.ReadingSession, error) {
	if _, err := s.requireBook(bookID); err != nil {
		return nil, err
	}
	return s.sessions.FindAllForBook(bookID)
}

// UpdateStatus drives the state machine for one status-change request.
//
// With no session history it opens session #1. When the active session is
// DNF, any request except "read" archives it verbatim and opens the next
// attempt. Otherwise the requested status is compared to the current one on
// the ordinal scale: forward or equal movement mutates in place, backward
// movement archives first when the attempt has recorded progress.
func (s *Service) UpdateStatus(bookID uint, in UpdateStatusInput) (*StatusResult, error) {
	if !in.Status.Valid() {
		return nil, validation("Invalid status")
	}
	if in.StartedDate != nil && in.CompletedDate != nil && in.CompletedDate.Before(*in.StartedDate) {
		return nil, validation("Completed date cannot be before started date")
	}
	if in.Rating.Set && in.Rating.Value != nil && (*in.Rating.Value < 0 || *in.Rating.Value > 5) {
		return nil, validation("Rating must be between 1 and 5")
	}

	book, err := s.requireBook(bookID)
	if err != nil {
		return nil, err
	}

	active, err := s.sessions.FindActiveForBook(bookID)
	if err != nil {
		return nil, fmt.Errorf("load active session: %w", err)
	}

	result := &StatusResult{}
	switch {
	case active == nil:
		session := s.buildSession(bookID, 1, in)
		if err := s.sessions.Create(session); err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
		result.Session = session

	case active.Status == entities.StatusDNF:
		if in.Status == entities.StatusRead {
			return nil, invalidTransition("Cannot mark DNF book as read directly")
		}
		next := s.buildSession(bookID, active.SessionNumber+1, in)
		if err := s.sessions.ArchiveAndCreate(active, next); err != nil {
			return nil, fmt.Errorf("archive dnf session: %w", err)
		}
		result.Session = next
		result.SessionArchived = true
		result.ArchivedSessionNumber = active.SessionNumber

	default:
		if err := s.transitionLinear(active, in, result); err != nil {
			return nil, err
		}
	}

	if in.Rating.Set {
		if err := s.applyRating(book, in.Rating); err != nil {
			return nil, err
		}
	}

	if in.Review != nil {
		result.Session.Review = *in.Review
		if err := s.sessions.Save(result.Session); err != nil {
			return nil, fmt.Errorf("save review: %w", err)
		}
	}

	s.runSideEffects(bookID)

	return result, nil
}

// transitionLinear handles the ordinal-comparison branch: the active session
// holds one of the four linear statuses.
func (s *Service) transitionLinear(active *entities.ReadingSession, in UpdateStatusInput, result *StatusResult) error {
	if in.Status == entities.StatusDNF {
		// Terminal request over a linear session: mutate in place, mirroring
		// MarkAsDNF's date handling without its reading-only precondition.
		active.Status = entities.StatusDNF
		active.CompletedDate = s.dateOrToday(in.CompletedDate)
		if active.StartedDate == nil {
			active.StartedDate = s.dateOrToday(in.StartedDate)
		}
		if err := s.sessions.Save(active); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		result.Session = active
		return nil
	}

	currentRank, _ := active.Status.Rank()
	requestedRank, _ := in.Status.Rank()

	if requestedRank >= currentRank {
		active.Status = in.Status
		if in.Status == entities.StatusReading && active.StartedDate == nil {
			active.StartedDate = s.dateOrToday(in.StartedDate)
		}
		if in.Status == entities.StatusRead {
			active.CompletedDate = s.dateOrToday(in.CompletedDate)
			if active.StartedDate == nil {
				active.StartedDate = s.dateOrToday(in.StartedDate)
			}
		}
		if err := s.sessions.Save(active); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		result.Session = active
		return nil
	}

	// Backward movement. Without recorded progress this is a correction of
	// an accidental status; with progress the attempt is real history and
	// must be frozen.
	count, err := s.progress.CountForSession(active.ID)
	if err != nil {
		return fmt.Errorf("count progress: %w", err)
	}

	if count == 0 {
		active.Status = in.Status
		if err := s.sessions.Save(active); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		result.Session = active
		return nil
	}

	next := s.buildSession(active.BookID, active.SessionNumber+1, in)
	if err := s.sessions.ArchiveAndCreate(active, next); err != nil {
		return fmt.Errorf("archive session: %w", err)
	}
	result.Session = next
	result.SessionArchived = true
	result.ArchivedSessionNumber = active.SessionNumber
	return nil
}

// MarkAsDNF abandons the active reading attempt. The status flip and
// completed date always land when the preconditions hold; rating and review
// attachment are best-effort and surface through the result flags.
func (s *Service) MarkAsDNF(in DNFInput) (*DNFResult, error) {
	book, err := s.requireBook(in.BookID)
	if err != nil {
		return nil, err
	}

	active, err := s.sessions.FindActiveForBook(in.BookID)
	if err != nil {
		return nil, fmt.Errorf("load active session: %w", err)
	}
	if active == nil {
		return nil, notFound("No active reading session found for this book")
	}
	if active.Status != entities.StatusReading {
		return nil, invalidTransition(fmt.Sprintf("Cannot mark as DNF from status %q. Must be \"reading\".", active.Status))
	}

	lastProgress, err := s.progress.FindMostRecentForSession(active.ID)
	if err != nil {
		return nil, fmt.Errorf("load last progress: %w", err)
	}

	completed := in.CompletedDate
	if completed == nil && lastProgress != nil {
		completed = &lastProgress.ProgressDate
	}
	active.Status = entities.StatusDNF
	active.CompletedDate = s.dateOrToday(completed)
	if err := s.sessions.Save(active); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	result := &DNFResult{
		Session:      active,
		LastProgress: lastProgress,
	}

	if in.Rating != nil && *in.Rating > 0 {
		outcome := runBestEffort("rating update", func() error {
			if err := s.books.UpdateRating(book.ID, in.Rating); err != nil {
				return err
			}
			book.Rating = in.Rating
			return nil
		})
		result.RatingUpdated = outcome.OK
		if outcome.OK {
			s.syncRating(book, *in.Rating)
		}
	}

	if in.Review != nil {
		outcome := runBestEffort("review update", func() error {
			active.Review = *in.Review
			return s.sessions.Save(active)
		})
		result.ReviewUpdated = outcome.OK
	}

	s.runSideEffects(in.BookID)

	return result, nil
}

// StartReread opens a fresh reading attempt for a finished book. The new
// session is numbered past every existing attempt; a still-active session is
// archived through the same transactional path as a backward transition.
func (s *Service) StartReread(bookID uint) (*entities.ReadingSession, error) {
	if _, err := s.requireBook(bookID); err != nil {
		return nil, err
	}

	finished, err := s.sessions.HasFinished(bookID)
	if err != nil {
		return nil, fmt.Errorf("check finished sessions: %w", err)
	}
	if !finished {
		return nil, invalidTransition("Cannot start re-read: book has not been finished")
	}

	maxNumber, err := s.sessions.MaxSessionNumber(bookID)
	if err != nil {
		return nil, fmt.Errorf("max session number: %w", err)
	}

	today := entities.NewDate(s.now())
	next := &entities.ReadingSession{
		BookID:        bookID,
		SessionNumber: maxNumber + 1,
		Status:        entities.StatusReading,
		IsActive:      true,
		StartedDate:   &today,
	}

	active, err := s.sessions.FindActiveForBook(bookID)
	if err != nil {
		return nil, fmt.Errorf("load active session: %w", err)
	}
	if active != nil {
		if err := s.sessions.ArchiveAndCreate(active, next); err != nil {
			return nil, fmt.Errorf("archive session: %w", err)
		}
	} else {
		if err := s.sessions.Create(next); err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
	}

	s.runSideEffects(bookID)

	return next, nil
}

// UpdateSessionDate sets one date field directly on a session. No
// state-machine logic and no side effects: a pure field update.
func (s *Service) UpdateSessionDate(sessionID uint, field DateField, value entities.Date) (*entities.ReadingSession, error) {
	session, err := s.sessions.FindByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, notFound("Session not found")
	}

	switch field {
	case DateFieldStarted:
		if session.CompletedDate != nil && session.CompletedDate.Before(value) {
			return nil, validation("Completed date cannot be before started date")
		}
		session.StartedDate = &value
	case DateFieldCompleted:
		if session.StartedDate != nil && value.Before(*session.StartedDate) {
			return nil, validation("Completed date cannot be before started date")
		}
		session.CompletedDate = &value
	default:
		return nil, validation("Invalid date field")
	}

	if err := s.sessions.Save(session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

func (s *Service) requireBook(bookID uint) (*entities.Book, error) {
	book, err := s.books.FindByID(bookID)
	if err != nil {
		return nil, fmt.Errorf("load book: %w", err)
	}
	if book == nil {
		return nil, notFound("Book not found")
	}
	return book, nil
}

// buildSession constructs a fresh active session for the requested status.
// Sessions opened directly into reading, read or dnf carry a started date;
// one opened directly as read also carries its completion date.
func (s *Service) buildSession(bookID uint, number int, in UpdateStatusInput) *entities.ReadingSession {
	session := &entities.ReadingSession{
		BookID:        bookID,
		SessionNumber: number,
		Status:        in.Status,
		IsActive:      true,
	}

	switch in.Status {
	case entities.StatusReading, entities.StatusRead, entities.StatusDNF:
		session.StartedDate = s.dateOrToday(in.StartedDate)
	}
	if in.Status == entities.StatusRead {
		session.CompletedDate = s.dateOrToday(in.CompletedDate)
	} else if in.Status == entities.StatusDNF && in.CompletedDate != nil {
		session.CompletedDate = in.CompletedDate
	}

	return session
}

// applyRating folds a rating patch into the book: explicit null clears,
// positive values set and sync, zero means the caller sent nothing.
func (s *Service) applyRating(book *entities.Book, rating OptionalRating) error {
	if rating.Value == nil {
		if err := s.books.UpdateRating(book.ID, nil); err != nil {
			return fmt.Errorf("clear rating: %w", err)
		}
		book.Rating = nil
		return nil
	}
	if *rating.Value == 0 {
		return nil
	}
	if err := s.books.UpdateRating(book.ID, rating.Value); err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	book.Rating = rating.Value
	s.syncRating(book, *rating.Value)
	return nil
}

func (s *Service) syncRating(book *entities.Book, rating float64) {
	if s.syncer == nil {
		return
	}
	runBestEffort("catalog rating sync", func() error {
		return s.syncer.SyncRating(context.Background(), book, rating)
	})
}

// runSideEffects fires the collaborators that follow every committed
// transition. Their failures are logged and swallowed.
func (s *Service) runSideEffects(bookID uint) {
	if s.streaks != nil {
		runBestEffort("streak recompute", s.streaks.Recompute)
	}
	if s.cache != nil {
		runBestEffort("cache invalidation", func() error {
			return s.cache.Invalidate(bookID)
		})
	}
}

func (s *Service) dateOrToday(d *entities.Date) *entities.Date {
	if d != nil {
		return d
	}
	today := entities.NewDate(s.now())
	return &today
}
