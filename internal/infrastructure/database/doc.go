// Package database provides the SQLite connection used for the audit
// trail, with embedded schema migrations.
//
// Automations themselves live as YAML files on disk; the database only
// carries history and bookkeeping, so the schema stays small. SQLite is
// opened with WAL mode and a busy timeout, and the connection pool is
// pinned to a single connection to match SQLite's single-writer model.
//
// Migrations are plain SQL files embedded into the binary, named
// YYYYMMDD_HHMMSS_description.up.sql with an optional .down.sql
// counterpart. Each migration runs in its own transaction.
package database
