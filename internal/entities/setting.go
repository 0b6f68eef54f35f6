package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Reading streak counters, maintained by the streaks service
	SettingKeyStreakCurrent     = "reading_streak_current"
	SettingKeyStreakLongest     = "reading_streak_longest"
	SettingKeyStreakLastDay     = "reading_streak_last_day"
	SettingKeyStreakRecomputeAt = "reading_streak_recomputed_at"
)
