package storage

import (
	"database/sql"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/pable/go-lol-metrics/internal/build"
)

// InsertBuild stores a pre-configured build, replacing any build for the
// same champion and role.
func (db *DB) InsertBuild(b build.Build) error {
	items, err := json.Marshal(b.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	_, err = db.conn.Exec(`
		INSERT OR REPLACE INTO builds(champion, role, champ_type, keystone, primary_path, secondary_path, items_json, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Champion, b.Role, b.Type, b.Runes.Keystone, b.Runes.PrimaryPath, b.Runes.SecondaryPath, string(items), b.Notes,
	)
	return err
}

const buildColumns = `champion, role, champ_type, keystone, primary_path, secondary_path, items_json, notes`

func scanBuild(row interface{ Scan(...any) error }) (*build.Build, error) {
	var b build.Build
	var items string
	if err := row.Scan(&b.Champion, &b.Role, &b.Type, &b.Runes.Keystone, &b.Runes.PrimaryPath,
		&b.Runes.SecondaryPath, &items, &b.Notes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(items), &b.Items); err != nil {
		return nil, fmt.Errorf("decode items for %s: %w", b.Champion, err)
	}
	return &b, nil
}

// FindBuild returns the stored build for champion. An empty role matches any
// role. It returns nil, nil when none exists.
func (db *DB) FindBuild(champion, role string) (*build.Build, error) {
	query := `SELECT ` + buildColumns + ` FROM builds WHERE champion = ?`
	args := []any{champion}
	if role != "" {
		query += ` AND role = ?`
		args = append(args, role)
	}
	query += ` ORDER BY role LIMIT 1`

	b, err := scanBuild(db.conn.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return b, err
}

// ListBuilds returns every stored build ordered by champion and role.
func (db *DB) ListBuilds() ([]build.Build, error) {
	rows, err := db.conn.Query(`SELECT ` + buildColumns + ` FROM builds ORDER BY champion, role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []build.Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}
