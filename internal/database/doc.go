// Package database owns the SQLite connection and schema migration.
//
// Per-aggregate repositories live in the subpackages:
//
//   - books: book identity, page counts, ratings
//   - sessions: reading-session records and the archive+create transaction
//   - progress: dated progress log entries
//   - settings: key/value application settings (streak counters)
package database
