// Package sqlite provides the SQLite-backed history of analyses and downloads.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It implements driven.HistoryStore.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files, and applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.etis/data/history.db
package sqlite
