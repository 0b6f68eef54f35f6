// Package progress provides database operations for progress log entries.
package progress

import (
	"errors"

	"gorm.io/gorm"

	"github.com/masonfox/tome-sub001/internal/entities"
)

// Repository handles all progress-log database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new progress entry.
func (r *Repository) Create(entry *entities.ProgressLog) error {
	return r.db.Create(entry).Error
}

// FindMostRecentForSession returns the session's latest entry by progress
// date, breaking same-day ties by insertion order. Returns (nil, nil) when
// the session has no entries.
func (r *Repository) FindMostRecentForSession(sessionID uint) (*entities.ProgressLog, error) {
	var entry entities.ProgressLog
	err := r.db.Where("session_id = ?", sessionID).
		Order("progress_date DESC, created_at DESC, id DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindAllForSession returns a session's entries, oldest first.
func (r *Repository) FindAllForSession(sessionID uint) ([]entities.ProgressLog, error) {
	var entries []entities.ProgressLog
	err := r.db.Where("session_id = ?", sessionID).
		Order("progress_date ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}

// CountForSession counts entries recorded against a session.
func (r *Repository) CountForSession(sessionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.ProgressLog{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}

// DistinctDates returns every calendar day with at least one progress entry,
// ascending. Used by the streaks service.
func (r *Repository) DistinctDates() ([]entities.Date, error) {
	var raw []string
	err := r.db.Model(&entities.ProgressLog{}).
		Distinct("progress_date").
		Order("progress_date ASC").
		Pluck("progress_date", &raw).Error
	if err != nil {
		return nil, err
	}

	dates := make([]entities.Date, 0, len(raw))
	for _, s := range raw {
		var d entities.Date
		if err := d.Scan(s); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}
