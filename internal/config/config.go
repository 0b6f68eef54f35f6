package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		StatsCache
		Hardcover
		StreakRebuild
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	StatsCache struct {
		Dir string
	}
	Hardcover struct {
		Token string
	}
	StreakRebuild struct {
		Enabled  bool
		Schedule string // Cron format: "5 0 * * *" = nightly at 00:05
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8187)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("stats_cache_dir", DefaultStatsCacheDir)
	v.SetDefault("hardcover_token", "")

	// Streak rebuild defaults: nightly, shortly after midnight, so a lapsed
	// streak rolls over at the day boundary
	v.SetDefault("streak_rebuild_enabled", true)
	v.SetDefault("streak_rebuild_schedule", "5 0 * * *")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		StatsCache: StatsCache{
			Dir: v.GetString("STATS_CACHE_DIR"),
		},
		Hardcover: Hardcover{
			Token: v.GetString("HARDCOVER_TOKEN"),
		},
		StreakRebuild: StreakRebuild{
			Enabled:  v.GetBool("STREAK_REBUILD_ENABLED"),
			Schedule: v.GetString("STREAK_REBUILD_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
	}
}
