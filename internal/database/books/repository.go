// Package books provides database operations for book records.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.FindByID(123)
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/masonfox/tome-sub001/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

// FindByID retrieves a book by its ID. Returns (nil, nil) when absent.
func (r *Repository) FindByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAll retrieves all books ordered by title.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("title ASC").Find(&books).Error
	return books, err
}

// SearchBooks searches books by title or author (case-insensitive partial match).
func (r *Repository) SearchBooks(query string) ([]entities.Book, error) {
	var books []entities.Book
	searchPattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)", searchPattern, searchPattern).
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// UpdateRating sets or clears the book's rating. A nil rating clears it.
func (r *Repository) UpdateRating(id uint, rating *float64) error {
	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Update("rating", rating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateMetadata updates specific metadata fields.
func (r *Repository) UpdateMetadata(id uint, fields map[string]any) error {
	return r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(fields).Error
}

// GetBooksMissingPageCount returns books without a total page count set.
func (r *Repository) GetBooksMissingPageCount() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("total_pages IS NULL OR total_pages = 0").Find(&books).Error
	return books, err
}
