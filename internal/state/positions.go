package state

import (
	"database/sql"
	"errors"
	"time"
)

func getPosition(db *sql.DB, url string) (Position, bool, error) {
	var (
		posMs     int64
		durMs     sql.NullInt64
		updatedAt int64
	)
	err := db.QueryRow(`
		SELECT position_ms, duration_ms, updated_at
		FROM resume_positions WHERE url = ?
	`, url).Scan(&posMs, &durMs, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, err
	}

	p := Position{
		URL:       url,
		Time:      time.Duration(posMs) * time.Millisecond,
		UpdatedAt: time.Unix(updatedAt, 0),
	}
	if durMs.Valid {
		p.Duration = time.Duration(durMs.Int64) * time.Millisecond
	}
	return p, true, nil
}

func savePosition(tx *sql.Tx, p Position) error {
	var dur sql.NullInt64
	if p.Duration > 0 {
		dur = sql.NullInt64{Int64: p.Duration.Milliseconds(), Valid: true}
	}
	_, err := tx.Exec(`
		INSERT INTO resume_positions (url, position_ms, duration_ms, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			position_ms = excluded.position_ms,
			duration_ms = excluded.duration_ms,
			updated_at = excluded.updated_at
	`, p.URL, p.Time.Milliseconds(), dur, p.UpdatedAt.Unix())
	return err
}

func deletePosition(tx *sql.Tx, url string) error {
	_, err := tx.Exec(`DELETE FROM resume_positions WHERE url = ?`, url)
	return err
}
