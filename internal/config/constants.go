package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./tome.db"

	// DefaultStatsCacheDir is the default directory for cached book stats
	DefaultStatsCacheDir = "./cache/stats"
)
