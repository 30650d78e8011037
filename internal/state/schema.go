package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS resume_positions (
			url TEXT PRIMARY KEY,
			position_ms INTEGER NOT NULL,
			duration_ms INTEGER,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_resume_updated_at ON resume_positions(updated_at);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
	return err
}
