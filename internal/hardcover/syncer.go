package hardcover

import (
	"context"
	"log"

	"github.com/masonfox/tome-sub001/internal/entities"
)

// RetryEnqueuer queues a failed sync for deferred retry.
type RetryEnqueuer interface {
	EnqueueRatingSync(bookID uint, hardcoverID string, rating float64) error
}

// Syncer adapts the API client to the engine's rating-sync collaborator.
// Books without a catalog identity are silently skipped; transport failures
// are handed to the retry queue when one is configured.
type Syncer struct {
	client   *Client
	enqueuer RetryEnqueuer
}

// NewSyncer creates a rating syncer over the API client.
func NewSyncer(client *Client) *Syncer {
	return &Syncer{client: client}
}

// SetRetryEnqueuer sets the deferred-retry queue (optional).
func (s *Syncer) SetRetryEnqueuer(enqueuer RetryEnqueuer) {
	s.enqueuer = enqueuer
}

// SyncRating pushes the book's rating to the catalog.
func (s *Syncer) SyncRating(ctx context.Context, book *entities.Book, rating float64) error {
	if book.HardcoverID == "" {
		return nil
	}

	err := s.client.SyncRating(ctx, book.HardcoverID, rating)
	if err == nil {
		return nil
	}

	if s.enqueuer != nil {
		if qerr := s.enqueuer.EnqueueRatingSync(book.ID, book.HardcoverID, rating); qerr != nil {
			log.Printf("Failed to queue rating sync retry for book %d: %v", book.ID, qerr)
		} else {
			log.Printf("Hardcover sync failed for book %d, retry queued: %v", book.ID, err)
		}
	}

	return err
}
