package tasks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonfox/tome-sub001/internal/hardcover"
)

type stubSyncer struct {
	err   error
	calls int
}

func (s *stubSyncer) SyncRating(_ context.Context, _ string, _ float64) error {
	s.calls++
	return s.err
}

func TestSyncRatingProcessor(t *testing.T) {
	task := SyncRatingTask{BookID: 1, HardcoverID: "hc-1", Rating: 4}

	t.Run("success", func(t *testing.T) {
		syncer := &stubSyncer{}
		err := SyncRatingProcessor(syncer)(context.Background(), task)
		require.NoError(t, err)
		assert.Equal(t, 1, syncer.calls)
	})

	t.Run("transient failure propagates for retry", func(t *testing.T) {
		syncer := &stubSyncer{err: &hardcover.ServerError{StatusCode: 502}}
		err := SyncRatingProcessor(syncer)(context.Background(), task)
		assert.Error(t, err)
	})

	t.Run("invalid token drops the task", func(t *testing.T) {
		syncer := &stubSyncer{err: hardcover.ErrInvalidToken}
		err := SyncRatingProcessor(syncer)(context.Background(), task)
		assert.NoError(t, err, "retrying cannot fix a bad token")
	})

	t.Run("nil syncer fails", func(t *testing.T) {
		err := SyncRatingProcessor(nil)(context.Background(), task)
		assert.Error(t, err)
	})
}

func TestSyncRatingTask_Config(t *testing.T) {
	cfg := SyncRatingTask{}.Config()
	assert.Equal(t, "sync_rating", cfg.Name)
	assert.Equal(t, 5, cfg.MaxAttempts)
}
