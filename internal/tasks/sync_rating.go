package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/masonfox/tome-sub001/internal/hardcover"
)

// RatingSyncer pushes a rating to the external catalog.
type RatingSyncer interface {
	SyncRating(ctx context.Context, hardcoverID string, rating float64) error
}

// SyncRatingTask retries a Hardcover rating sync that failed inline.
type SyncRatingTask struct {
	BookID      uint    `json:"book_id"`
	HardcoverID string  `json:"hardcover_id"`
	Rating      float64 `json:"rating"`
}

// Config returns the queue configuration for rating sync tasks.
func (t SyncRatingTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sync_rating",
		MaxAttempts: 5,
		Backoff:     5 * time.Minute,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SyncRatingProcessor creates a processor function for SyncRatingTask.
func SyncRatingProcessor(syncer RatingSyncer) backlite.QueueProcessor[SyncRatingTask] {
	return func(ctx context.Context, task SyncRatingTask) error {
		if syncer == nil {
			return fmt.Errorf("rating syncer not configured")
		}

		err := syncer.SyncRating(ctx, task.HardcoverID, task.Rating)
		if errors.Is(err, hardcover.ErrInvalidToken) {
			// Retrying cannot fix a bad token; drop the task.
			log.Printf("[TASK] Dropping rating sync for book %d: %v", task.BookID, err)
			return nil
		}
		if err != nil {
			return fmt.Errorf("sync rating for book %d: %w", task.BookID, err)
		}

		log.Printf("[TASK] Synced rating %.1f for book %d", task.Rating, task.BookID)
		return nil
	}
}

// NewSyncRatingQueue creates a backlite queue for rating sync tasks.
func NewSyncRatingQueue(syncer RatingSyncer) backlite.Queue {
	return backlite.NewQueue(SyncRatingProcessor(syncer))
}
