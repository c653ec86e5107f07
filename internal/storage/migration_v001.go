package storage

import "database/sql"

// migrateV001 creates the initial catalog schema. Every statement uses IF
// NOT EXISTS so the migration can be replayed.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		// ── Tables ──────────────────────────────────────────────

		`CREATE TABLE IF NOT EXISTS records (
			id            TEXT PRIMARY KEY,
			topic         TEXT,
			title         TEXT,
			location      TEXT,
			people        TEXT,
			tags          TEXT,
			albums        TEXT,
			date          INTEGER NOT NULL,
			date_text     TEXT NOT NULL,
			precision     INTEGER NOT NULL CHECK (precision IN (1, 3, 7)),
			rank          REAL NOT NULL,
			file_type     TEXT NOT NULL CHECK (file_type IN ('image', 'video', 'audio')),
			extension     TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			privacy_level INTEGER NOT NULL DEFAULT 0,
			people_count  INTEGER NOT NULL DEFAULT 0,
			status        TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'deleted'))
		)`,

		`CREATE TABLE IF NOT EXISTS audit_log (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			action    TEXT NOT NULL,
			detail    TEXT NOT NULL DEFAULT '',
			record_id TEXT,
			ts        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// ── Indexes ────────────────────────────────────────────

		`CREATE INDEX IF NOT EXISTS idx_records_date_rank ON records(date, rank)`,
		`CREATE INDEX IF NOT EXISTS idx_records_status    ON records(status)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_log_ts      ON audit_log(ts)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_log_action  ON audit_log(action)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
