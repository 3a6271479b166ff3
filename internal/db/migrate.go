package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillVersionCopies(db); err != nil {
		return fmt.Errorf("backfilling parameter version copies: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS languages (
		code        TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		date_format TEXT NOT NULL DEFAULT '%m/%d/%Y'
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		login      TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL DEFAULT '',
		lang       TEXT NOT NULL REFERENCES languages(code),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS models (
		model      TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS stages (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		model           TEXT NOT NULL REFERENCES models(model) ON DELETE CASCADE,
		sequence        INTEGER NOT NULL DEFAULT 1,
		fold            INTEGER NOT NULL DEFAULT 0,
		legend_priority TEXT NOT NULL DEFAULT '',
		legend_blocked  TEXT NOT NULL DEFAULT '',
		legend_done     TEXT NOT NULL DEFAULT '',
		legend_normal   TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_stages_model ON stages(model, sequence, name, id)`,

	`CREATE TABLE IF NOT EXISTS cards (
		id                     TEXT PRIMARY KEY,
		model                  TEXT NOT NULL REFERENCES models(model) ON DELETE CASCADE,
		name                   TEXT NOT NULL,
		description            TEXT NOT NULL DEFAULT '',
		kanban_sequence        INTEGER NOT NULL DEFAULT 10,
		kanban_priority        TEXT NOT NULL DEFAULT '0'
		                       CHECK(kanban_priority IN ('0','1','2')),
		kanban_stage_id        TEXT REFERENCES stages(id) ON DELETE SET NULL,
		kanban_user_id         TEXT REFERENCES users(id) ON DELETE SET NULL,
		kanban_color           INTEGER NOT NULL DEFAULT 0,
		kanban_status          TEXT NOT NULL DEFAULT 'normal'
		                       CHECK(kanban_status IN ('normal','done','blocked')),
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cards_model ON cards(model)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_stage ON cards(kanban_stage_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_kanban_order ON cards(kanban_priority DESC, kanban_sequence)`,

	`CREATE TABLE IF NOT EXISTS companies (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		country    TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS time_parameters (
		id          TEXT PRIMARY KEY,
		code        TEXT NOT NULL,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		type        TEXT NOT NULL
		            CHECK(type IN ('date','string','integer','float','boolean','json')),
		country     TEXT,
		company_id  TEXT REFERENCES companies(id) ON DELETE CASCADE,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_time_parameters_scope
		ON time_parameters(code, COALESCE(country, ''), COALESCE(company_id, ''))`,

	`CREATE TABLE IF NOT EXISTS time_parameter_versions (
		id             TEXT PRIMARY KEY,
		parameter_id   TEXT NOT NULL REFERENCES time_parameters(id) ON DELETE CASCADE,
		effective_date TEXT NOT NULL,
		value          TEXT,
		code           TEXT NOT NULL DEFAULT '',
		company_id     TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		UNIQUE(parameter_id, effective_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_versions_code ON time_parameter_versions(code)`,

	// Seed languages and the default user
	`INSERT OR IGNORE INTO languages (code, name, date_format) VALUES
		('en_US', 'English (US)', '%m/%d/%Y'),
		('en_GB', 'English (UK)', '%d/%m/%Y'),
		('fr_FR', 'French', '%d/%m/%Y'),
		('de_DE', 'German', '%d.%m.%Y'),
		('es_ES', 'Spanish', '%d/%m/%Y')`,
	`INSERT OR IGNORE INTO users (id, login, name, lang, created_at, updated_at)
		VALUES ('00000000-0000-0000-0000-000000000001', 'admin', 'Administrator', 'en_US',
		        strftime('%Y-%m-%dT%H:%M:%SZ', 'now'), strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))`,

	// json_schema was added after the first parameter release
	`ALTER TABLE time_parameters ADD COLUMN json_schema TEXT NOT NULL DEFAULT ''`,
}

// migrateBackfillVersionCopies refreshes the code and company copied onto
// versions from their parameter. Rows written before the copies existed, or
// by tools that bypass the service layer, are brought back in line.
// Idempotent: only touches rows that differ.
func migrateBackfillVersionCopies(db *sql.DB) error {
	ctx := context.Background()

	query := `UPDATE time_parameter_versions
		SET code = p.code, company_id = p.company_id
		FROM time_parameters p
		WHERE p.id = time_parameter_versions.parameter_id
		  AND (time_parameter_versions.code != p.code
		       OR time_parameter_versions.company_id IS NOT p.company_id)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("updating version copies: %w", err)
	}
	return nil
}
