package entities

import (
	"time"
)

type Book struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Title       string   `gorm:"index;size:512" json:"title"`
	Author      string   `gorm:"index;size:256" json:"author"`
	ISBN        string   `gorm:"index;size:20" json:"isbn,omitempty"`
	CoverURL    string   `gorm:"size:2048" json:"cover_url,omitempty"`
	TotalPages  *int     `json:"total_pages,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	HardcoverID string   `gorm:"size:64" json:"hardcover_id,omitempty"` // external catalog identity for rating sync

	Sessions []ReadingSession `gorm:"foreignKey:BookID" json:"sessions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReadingSession is one attempt at reading a book. A book accumulates
// sessions over re-reads and abandoned attempts; at most one session per
// book is active at any observable instant.
type ReadingSession struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	BookID        uint   `gorm:"index" json:"book_id"`
	SessionNumber int    `json:"session_number"`
	Status        Status `gorm:"size:20" json:"status"`
	IsActive      bool   `gorm:"index" json:"is_active"`
	StartedDate   *Date  `gorm:"type:date" json:"started_date,omitempty"`
	CompletedDate *Date  `gorm:"type:date" json:"completed_date,omitempty"`
	Review        string `gorm:"type:text" json:"review,omitempty"`

	Book Book `gorm:"foreignKey:BookID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgressLog is one dated measurement of reading position within a session.
type ProgressLog struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	BookID            uint    `gorm:"index" json:"book_id"`
	SessionID         uint    `gorm:"index" json:"session_id"`
	CurrentPage       int     `json:"current_page"`
	CurrentPercentage float64 `json:"current_percentage"`
	ProgressDate      Date    `gorm:"type:date;index" json:"progress_date"`
	Notes             string  `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Book) TableName() string {
	return "books"
}

func (ReadingSession) TableName() string {
	return "reading_sessions"
}

func (ProgressLog) TableName() string {
	return "progress_logs"
}
