package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/masonfox/tome-sub001/internal/config"
	"github.com/masonfox/tome-sub001/internal/database"
	"github.com/masonfox/tome-sub001/internal/database/progress"
	"github.com/masonfox/tome-sub001/internal/database/settings"
	"github.com/masonfox/tome-sub001/internal/streaks"
)

// StreakRebuildCommand recomputes the reading streak from progress history
type StreakRebuildCommand struct {
	DatabasePath string
	Verbose      bool
}

// NewStreakRebuildCommand creates a new StreakRebuildCommand
func NewStreakRebuildCommand() *StreakRebuildCommand {
	return &StreakRebuildCommand{}
}

// ParseFlags parses command line flags
func (cmd *StreakRebuildCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("rebuild-streak", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s rebuild-streak [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Recompute the reading streak from logged progress dates.\n\n")
		fmt.Fprintf(os.Stderr, "This command:\n")
		fmt.Fprintf(os.Stderr, "  1. Collects the distinct dates with logged progress\n")
		fmt.Fprintf(os.Stderr, "  2. Walks runs of consecutive days to find current and longest streaks\n")
		fmt.Fprintf(os.Stderr, "  3. Persists the result so the streak endpoint reads it cheaply\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s rebuild-streak\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s rebuild-streak -db /data/tome.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	return nil
}

// Run executes the rebuild command
func (cmd *StreakRebuildCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	if cmd.Verbose {
		fmt.Printf("Using database: %s\n", cmd.DatabasePath)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	progressRepo := progress.NewRepository(db.DB)
	settingsRepo := settings.NewRepository(db.DB)
	service := streaks.NewService(progressRepo, settingsRepo)

	if err := service.Recompute(); err != nil {
		return fmt.Errorf("failed to rebuild streak: %w", err)
	}

	streak := service.GetStreak()
	lastDay := "none"
	if streak.LastDay != nil {
		lastDay = streak.LastDay.String()
	}
	fmt.Printf("Streak rebuilt: current=%d longest=%d last_day=%s\n",
		streak.Current, streak.Longest, lastDay)
	return nil
}
