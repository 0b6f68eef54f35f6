package streaks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/masonfox/tome-sub001/internal/entities"
)

type fakeDates struct {
	dates []entities.Date
}

func (f *fakeDates) DistinctDates() ([]entities.Date, error) {
	return f.dates, nil
}

type memorySettings struct {
	values map[string]string
}

func newMemorySettings() *memorySettings {
	return &memorySettings{values: map[string]string{}}
}

func (m *memorySettings) GetSetting(key string) (*entities.Setting, error) {
	value, ok := m.values[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &entities.Setting{Key: key, Value: value}, nil
}

func (m *memorySettings) SetSetting(key, value string) error {
	m.values[key] = value
	return nil
}

func days(strs ...string) []entities.Date {
	dates := make([]entities.Date, 0, len(strs))
	for _, s := range strs {
		dates = append(dates, entities.MustParseDate(s))
	}
	return dates
}

func newTestService(dates []entities.Date) (*Service, *memorySettings) {
	settings := newMemorySettings()
	service := NewService(&fakeDates{dates: dates}, settings)
	service.SetClock(func() time.Time {
		return time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	})
	return service, settings
}

func TestCompute_EmptyHistory(t *testing.T) {
	service, _ := newTestService(nil)
	require.NoError(t, service.Recompute())

	streak := service.GetStreak()
	assert.Equal(t, 0, streak.Current)
	assert.Equal(t, 0, streak.Longest)
	assert.Nil(t, streak.LastDay)
}

func TestCompute_RunEndingToday(t *testing.T) {
	service, _ := newTestService(days("2026-02-08", "2026-02-09", "2026-02-10"))
	require.NoError(t, service.Recompute())

	streak := service.GetStreak()
	assert.Equal(t, 3, streak.Current)
	assert.Equal(t, 3, streak.Longest)
	require.NotNil(t, streak.LastDay)
	assert.Equal(t, "2026-02-10", streak.LastDay.String())
}

func TestCompute_RunEndingYesterdayStillCounts(t *testing.T) {
	service, _ := newTestService(days("2026-02-08", "2026-02-09"))
	require.NoError(t, service.Recompute())

	streak := service.GetStreak()
	assert.Equal(t, 2, streak.Current)
}

func TestCompute_LapsedStreak(t *testing.T) {
	service, _ := newTestService(days("2026-02-01", "2026-02-02", "2026-02-03"))
	require.NoError(t, service.Recompute())

	streak := service.GetStreak()
	assert.Equal(t, 0, streak.Current, "a run ending before yesterday has lapsed")
	assert.Equal(t, 3, streak.Longest)
}

func TestCompute_LongestSurvivesGaps(t *testing.T) {
	service, _ := newTestService(days(
		"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04",
		"2026-02-09", "2026-02-10",
	))
	require.NoError(t, service.Recompute())

	streak := service.GetStreak()
	assert.Equal(t, 2, streak.Current)
	assert.Equal(t, 4, streak.Longest)
}

func TestCompute_SingleDay(t *testing.T) {
	service, _ := newTestService(days("2026-02-10"))
	require.NoError(t, service.Recompute())

	streak := service.GetStreak()
	assert.Equal(t, 1, streak.Current)
	assert.Equal(t, 1, streak.Longest)
}

func TestRecompute_PersistsSettings(t *testing.T) {
	service, settings := newTestService(days("2026-02-10"))
	require.NoError(t, service.Recompute())

	assert.Equal(t, "1", settings.values[entities.SettingKeyStreakCurrent])
	assert.Equal(t, "1", settings.values[entities.SettingKeyStreakLongest])
	assert.Equal(t, "2026-02-10", settings.values[entities.SettingKeyStreakLastDay])
	assert.NotEmpty(t, settings.values[entities.SettingKeyStreakRecomputeAt])
}

func TestGetStreak_MissingSettingsReadAsZero(t *testing.T) {
	service, _ := newTestService(nil)

	streak := service.GetStreak()
	assert.Equal(t, 0, streak.Current)
	assert.Equal(t, 0, streak.Longest)
	assert.Nil(t, streak.LastDay)
}
