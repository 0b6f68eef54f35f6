// Package sessions provides database operations for reading sessions.
//
// The archive+create step that closes one reading attempt and opens the
// next runs inside a single transaction so a book can never be observed
// with zero or two active sessions.
package sessions

import (
	"errors"

	"gorm.io/gorm"

	"github.com/masonfox/tome-sub001/internal/entities"
)

// Repository handles all reading-session database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sessions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new session.
func (r *Repository) Create(session *entities.ReadingSession) error {
	return r.db.Create(session).Error
}

// FindByID retrieves a session by its ID. Returns (nil, nil) when absent.
func (r *Repository) FindByID(id uint) (*entities.ReadingSession, error) {
	var session entities.ReadingSession
	err := r.db.First(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Save persists all fields of an already-loaded session.
func (r *Repository) Save(session *entities.ReadingSession) error {
	return r.db.Save(session).Error
}

// FindActiveForBook returns the book's single active session, or (nil, nil)
// when the book has no session history.
func (r *Repository) FindActiveForBook(bookID uint) (*entities.ReadingSession, error) {
	var session entities.ReadingSession
	err := r.db.Where("book_id = ? AND is_active = ?", bookID, true).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindAllForBook returns every session for a book, newest attempt first.
func (r *Repository) FindAllForBook(bookID uint) ([]entities.ReadingSession, error) {
	var sessions []entities.ReadingSession
	err := r.db.Where("book_id = ?", bookID).Order("session_number DESC").Find(&sessions).Error
	return sessions, err
}

// MaxSessionNumber returns the highest session number recorded for a book,
// or 0 when the book has no sessions.
func (r *Repository) MaxSessionNumber(bookID uint) (int, error) {
	var max *int
	err := r.db.Model(&entities.ReadingSession{}).
		Where("book_id = ?", bookID).
		Select("MAX(session_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// HasFinished reports whether any session for the book, active or archived,
// reached the read status.
func (r *Repository) HasFinished(bookID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.ReadingSession{}).
		Where("book_id = ? AND status = ?", bookID, entities.StatusRead).
		Count(&count).Error
	return count > 0, err
}

// CountActiveForBook counts sessions currently flagged active for a book.
func (r *Repository) CountActiveForBook(bookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.ReadingSession{}).
		Where("book_id = ? AND is_active = ?", bookID, true).
		Count(&count).Error
	return count, err
}

// ArchiveAndCreate flips the old session inactive and inserts the new one
// atomically. Only is_active changes on the old session; its status, dates
// and review are preserved verbatim.
func (r *Repository) ArchiveAndCreate(old *entities.ReadingSession, next *entities.ReadingSession) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.ReadingSession{}).
			Where("id = ? AND is_active = ?", old.ID, true).
			Update("is_active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(next).Error
	})
	if err != nil {
		return err
	}
	old.IsActive = false
	return nil
}
