// Package sqlite provides a SQLite-based implementation of driven.KeywordStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Applied versions are recorded in the schema_migrations table.
//
// # Data Location
//
// By default, the database is stored at ~/.hilite/data/keywords.db
//
// # Thread Safety
//
// All operations are thread-safe. Save replaces the whole list in a single
// transaction, so readers never observe a partially written list.
package sqlite
