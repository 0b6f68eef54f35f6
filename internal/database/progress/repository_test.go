package progress

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/masonfox/tome-sub001/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_progress_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.ProgressLog{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func entry(sessionID uint, day string, pct float64) *entities.ProgressLog {
	return &entities.ProgressLog{
		BookID:            1,
		SessionID:         sessionID,
		CurrentPercentage: pct,
		ProgressDate:      entities.MustParseDate(day),
	}
}

func TestRepository_FindMostRecentForSession(t *testing.T) {
	t.Run("latest by progress date", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, repo.Create(entry(1, "2026-01-08", 35)))
		require.NoError(t, repo.Create(entry(1, "2026-01-05", 20)))
		require.NoError(t, repo.Create(entry(2, "2026-01-09", 90)))

		latest, err := repo.FindMostRecentForSession(1)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, "2026-01-08", latest.ProgressDate.String())
		assert.Equal(t, 35.0, latest.CurrentPercentage)
	})

	t.Run("same-day tie broken by insertion order", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, repo.Create(entry(1, "2026-01-08", 30)))
		require.NoError(t, repo.Create(entry(1, "2026-01-08", 45)))

		latest, err := repo.FindMostRecentForSession(1)
		require.NoError(t, err)
		assert.Equal(t, 45.0, latest.CurrentPercentage)
	})

	t.Run("nil when empty", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		latest, err := repo.FindMostRecentForSession(7)
		require.NoError(t, err)
		assert.Nil(t, latest)
	})
}

func TestRepository_FindAllForSession(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(entry(1, "2026-01-08", 35)))
	require.NoError(t, repo.Create(entry(1, "2026-01-05", 20)))

	all, err := repo.FindAllForSession(1)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2026-01-05", all[0].ProgressDate.String())
	assert.Equal(t, "2026-01-08", all[1].ProgressDate.String())
}

func TestRepository_CountForSession(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	count, err := repo.CountForSession(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, repo.Create(entry(1, "2026-01-05", 20)))
	require.NoError(t, repo.Create(entry(1, "2026-01-06", 25)))
	require.NoError(t, repo.Create(entry(2, "2026-01-06", 80)))

	count, err = repo.CountForSession(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRepository_DistinctDates(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(entry(1, "2026-01-08", 35)))
	require.NoError(t, repo.Create(entry(1, "2026-01-05", 20)))
	require.NoError(t, repo.Create(entry(2, "2026-01-05", 10)))

	dates, err := repo.DistinctDates()
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, "2026-01-05", dates[0].String())
	assert.Equal(t, "2026-01-08", dates[1].String())
}
