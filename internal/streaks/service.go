// Package streaks maintains the reading-day streak counters.
//
// A streak day is any calendar day with at least one progress entry. The
// counters are denormalized into the settings table so reads are cheap; the
// engine recomputes them best-effort after every transition and the
// scheduler rebuilds them nightly to roll expired streaks over.
package streaks

import (
	"fmt"
	"strconv"
	"time"

	"github.com/masonfox/tome-sub001/internal/entities"
)

// ProgressDates lists every calendar day with recorded progress, ascending.
type ProgressDates interface {
	DistinctDates() ([]entities.Date, error)
}

// SettingsStore persists the computed counters.
type SettingsStore interface {
	GetSetting(key string) (*entities.Setting, error)
	SetSetting(key, value string) error
}

// Streak is the computed state of the reading streak.
type Streak struct {
	Current int            `json:"current"`
	Longest int            `json:"longest"`
	LastDay *entities.Date `json:"last_day,omitempty"`
}

// Service recomputes and serves the streak counters.
type Service struct {
	dates    ProgressDates
	settings SettingsStore
	now      func() time.Time
}

// NewService creates a streaks service.
func NewService(dates ProgressDates, settings SettingsStore) *Service {
	return &Service{
		dates:    dates,
		settings: settings,
		now:      time.Now,
	}
}

// SetClock overrides the time source. Used by tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Recompute rebuilds the counters from the full progress history.
func (s *Service) Recompute() error {
	dates, err := s.dates.DistinctDates()
	if err != nil {
		return fmt.Errorf("load progress dates: %w", err)
	}

	streak := compute(dates, entities.NewDate(s.now()))

	if err := s.settings.SetSetting(entities.SettingKeyStreakCurrent, strconv.Itoa(streak.Current)); err != nil {
		return fmt.Errorf("persist current streak: %w", err)
	}
	if err := s.settings.SetSetting(entities.SettingKeyStreakLongest, strconv.Itoa(streak.Longest)); err != nil {
		return fmt.Errorf("persist longest streak: %w", err)
	}
	lastDay := ""
	if streak.LastDay != nil {
		lastDay = streak.LastDay.String()
	}
	if err := s.settings.SetSetting(entities.SettingKeyStreakLastDay, lastDay); err != nil {
		return fmt.Errorf("persist last streak day: %w", err)
	}
	if err := s.settings.SetSetting(entities.SettingKeyStreakRecomputeAt, s.now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("persist recompute timestamp: %w", err)
	}

	return nil
}

// GetStreak reads the persisted counters. Missing settings read as zero.
func (s *Service) GetStreak() Streak {
	streak := Streak{
		Current: s.readInt(entities.SettingKeyStreakCurrent),
		Longest: s.readInt(entities.SettingKeyStreakLongest),
	}
	if setting, err := s.settings.GetSetting(entities.SettingKeyStreakLastDay); err == nil && setting.Value != "" {
		if d, err := entities.ParseDate(setting.Value); err == nil {
			streak.LastDay = &d
		}
	}
	return streak
}

func (s *Service) readInt(key string) int {
	setting, err := s.settings.GetSetting(key)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(setting.Value)
	if err != nil {
		return 0
	}
	return n
}

// compute walks the sorted distinct dates once. The current streak is the
// run of consecutive days ending on today or yesterday; a last entry older
// than yesterday means the streak has lapsed.
func compute(dates []entities.Date, today entities.Date) Streak {
	if len(dates) == 0 {
		return Streak{}
	}

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Equal(dates[i-1].AddDays(1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := dates[len(dates)-1]
	current := 0
	if last.Equal(today) || last.Equal(today.AddDays(-1)) {
		current = run
	}

	return Streak{Current: current, Longest: longest, LastDay: &last}
}
