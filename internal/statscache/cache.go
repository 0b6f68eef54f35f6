// Package statscache keeps per-book reading statistics in a local file
// cache so book pages don't recount session history on every request. The
// lifecycle engine invalidates a book's entry after every transition.
package statscache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/masonfox/tome-sub001/internal/entities"
)

// BookStats is the cached summary of a book's reading history.
type BookStats struct {
	BookID         uint                  `json:"book_id"`
	TotalSessions  int                   `json:"total_sessions"`
	TimesFinished  int                   `json:"times_finished"`
	TimesAbandoned int                   `json:"times_abandoned"`
	ActiveStatus   entities.Status       `json:"active_status,omitempty"`
	LastProgress   *entities.ProgressLog `json:"last_progress,omitempty"`
	ComputedAt     time.Time             `json:"computed_at"`
}

// Computer produces fresh stats on a cache miss.
type Computer interface {
	ComputeBookStats(bookID uint) (*BookStats, error)
}

// Cache handles local caching of computed book stats.
type Cache struct {
	cacheDir string
	computer Computer
}

// NewCache creates a new stats cache at the specified directory.
func NewCache(cacheDir string, computer Computer) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	return &Cache{
		cacheDir: cacheDir,
		computer: computer,
	}, nil
}

// GetStats returns the cached stats for a book, computing and caching them
// if not present.
func (c *Cache) GetStats(bookID uint) (*BookStats, error) {
	cachePath := filepath.Join(c.cacheDir, c.statsFilename(bookID))

	if data, err := os.ReadFile(cachePath); err == nil {
		var stats BookStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
		// Corrupt entry: fall through and recompute.
		_ = os.Remove(cachePath)
	}

	stats, err := c.computer.ComputeBookStats(bookID)
	if err != nil {
		return nil, err
	}
	stats.ComputedAt = time.Now()

	data, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("encode stats: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		return nil, fmt.Errorf("write cache entry: %w", err)
	}

	return stats, nil
}

// Invalidate removes the cached stats for a book.
func (c *Cache) Invalidate(bookID uint) error {
	err := os.Remove(filepath.Join(c.cacheDir, c.statsFilename(bookID)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *Cache) statsFilename(bookID uint) string {
	return fmt.Sprintf("stats_%d.json", bookID)
}
