package metadata

import (
	"context"
	"fmt"

	"github.com/masonfox/tome-sub001/internal/entities"
)

// Provider defines the interface for fetching book metadata.
type Provider interface {
	SearchByISBN(ctx context.Context, isbn string) (*BookMetadata, error)
}

// BookUpdater defines the interface for updating books in the database.
type BookUpdater interface {
	FindByID(id uint) (*entities.Book, error)
	UpdateMetadata(id uint, fields map[string]any) error
}

// CacheInvalidator drops cached derived data for a book.
type CacheInvalidator interface {
	Invalidate(bookID uint) error
}

// EnrichmentResult contains the result of an enrichment operation.
type EnrichmentResult struct {
	Book          *entities.Book `json:"book"`
	FieldsUpdated []string       `json:"fields_updated"`
}

// Enricher backfills page counts and covers from an external source. The
// page count feeds progress percentage computation, so enrichment is the
// usual path to making auto-completion work for manually created books.
type Enricher struct {
	provider Provider
	books    BookUpdater
	cache    CacheInvalidator
}

// NewEnricher creates an Enricher with the given provider and book store.
func NewEnricher(provider Provider, books BookUpdater) *Enricher {
	return &Enricher{
		provider: provider,
		books:    books,
	}
}

// SetCacheInvalidator sets the stats cache invalidator (optional).
func (e *Enricher) SetCacheInvalidator(cache CacheInvalidator) {
	e.cache = cache
}

// EnrichBook fetches metadata for a book and fills in its missing fields.
// Existing values are never overwritten.
func (e *Enricher) EnrichBook(ctx context.Context, bookID uint) (*EnrichmentResult, error) {
	book, err := e.books.FindByID(bookID)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book == nil {
		return nil, fmt.Errorf("book %d not found", bookID)
	}
	if book.ISBN == "" {
		return nil, fmt.Errorf("book %d has no ISBN to search by", bookID)
	}

	metadata, err := e.provider.SearchByISBN(ctx, book.ISBN)
	if err != nil {
		return nil, fmt.Errorf("metadata search failed: %w", err)
	}

	updates := map[string]any{}
	var fieldsUpdated []string
	if (book.TotalPages == nil || *book.TotalPages == 0) && metadata.PageCount > 0 {
		updates["total_pages"] = metadata.PageCount
		fieldsUpdated = append(fieldsUpdated, "total_pages")
	}
	if book.CoverURL == "" && metadata.CoverURL != "" {
		updates["cover_url"] = metadata.CoverURL
		fieldsUpdated = append(fieldsUpdated, "cover_url")
	}

	if len(fieldsUpdated) > 0 {
		if err := e.books.UpdateMetadata(bookID, updates); err != nil {
			return nil, fmt.Errorf("update book metadata: %w", err)
		}
		if e.cache != nil {
			_ = e.cache.Invalidate(bookID)
		}
		book, err = e.books.FindByID(bookID)
		if err != nil {
			return nil, fmt.Errorf("reload book: %w", err)
		}
	}

	return &EnrichmentResult{
		Book:          book,
		FieldsUpdated: fieldsUpdated,
	}, nil
}
