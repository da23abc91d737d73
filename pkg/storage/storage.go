// Package storage persists user-created patterns in a local SQLite
// database, keyed by (name, age) so specifier variants can be merged.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hiddenclip/tubescope/pkg/pattern"
)

type DB struct {
	sql *sql.DB
}

// Open opens (and if needed creates) the store at path.
func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS user_patterns (
  id          INTEGER PRIMARY KEY,
  name        TEXT NOT NULL,
  age         TEXT NOT NULL DEFAULT '',
  category    TEXT NOT NULL DEFAULT '',
  specifiers  TEXT NOT NULL DEFAULT '[]',
  years       TEXT NOT NULL DEFAULT '[]',
  num_range   TEXT,
  date_before TEXT,
  date_after  TEXT,
  created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(name, age)
);
CREATE INDEX IF NOT EXISTS idx_user_patterns_category ON user_patterns(category);
	`); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// List returns every stored pattern, flagged user-created.
func (d *DB) List(ctx context.Context) ([]pattern.Pattern, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT name, age, category, specifiers, years, num_range, date_before, date_after FROM user_patterns ORDER BY name, age")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pattern.Pattern
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert inserts a pattern or merges it into the row sharing its
// (name, age) key: specifier lists are unioned and the incoming record's
// category and non-empty constraint fields win on conflict.
func (d *DB) Upsert(ctx context.Context, p pattern.Pattern) error {
	if !p.Valid() {
		return fmt.Errorf("pattern needs a name or at least one non-empty specifier")
	}

	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	row := tx.QueryRowContext(ctx,
		"SELECT name, age, category, specifiers, years, num_range, date_before, date_after FROM user_patterns WHERE name = ? AND age = ?",
		p.Name, string(p.Age))
	existing, scanErr := scanPattern(row)
	switch {
	case scanErr == sql.ErrNoRows:
		err = insertPattern(ctx, tx, p)
	case scanErr != nil:
		err = scanErr
	default:
		err = updatePattern(ctx, tx, Merge(existing, p))
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Remove deletes a whole (name, age) row. It reports whether a row was
// actually deleted.
func (d *DB) Remove(ctx context.Context, name string, age pattern.Age) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"DELETE FROM user_patterns WHERE name = ? AND age = ?", name, string(age))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// RemoveSpecifier drops one specifier from a stored pattern, deleting the
// row when nothing renderable remains.
func (d *DB) RemoveSpecifier(ctx context.Context, name string, age pattern.Age, specifier string) (bool, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	row := tx.QueryRowContext(ctx,
		"SELECT name, age, category, specifiers, years, num_range, date_before, date_after FROM user_patterns WHERE name = ? AND age = ?",
		name, string(age))
	p, scanErr := scanPattern(row)
	if scanErr == sql.ErrNoRows {
		return false, tx.Rollback()
	}
	if scanErr != nil {
		err = scanErr
		return false, err
	}

	kept := p.Specifiers[:0:0]
	removed := false
	for _, s := range p.Specifiers {
		if s == specifier && !removed {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	if !removed {
		return false, tx.Rollback()
	}
	p.Specifiers = kept

	if !p.Valid() {
		_, err = tx.ExecContext(ctx, "DELETE FROM user_patterns WHERE name = ? AND age = ?", name, string(age))
	} else {
		err = updatePattern(ctx, tx, p)
	}
	if err != nil {
		return false, err
	}
	err = tx.Commit()
	return err == nil, err
}

// ReplaceAll swaps the whole stored set in one transaction. Records
// sharing a (name, age) key are merged first so the unique index never
// rejects the batch.
func (d *DB) ReplaceAll(ctx context.Context, patterns []pattern.Pattern) error {
	index := make(map[string]int, len(patterns))
	var merged []pattern.Pattern
	for _, p := range patterns {
		k := p.Name + "\x00" + string(p.Age)
		if i, ok := index[k]; ok {
			merged[i] = Merge(merged[i], p)
			continue
		}
		index[k] = len(merged)
		merged = append(merged, p)
	}

	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM user_patterns"); err != nil {
		return err
	}
	for _, p := range merged {
		if err = insertPattern(ctx, tx, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Merge combines an existing and an incoming record sharing a (name, age)
// key: specifiers are unioned in order, and the incoming category and
// non-empty constraints are preferred.
func Merge(existing, incoming pattern.Pattern) pattern.Pattern {
	out := existing
	seen := make(map[string]bool, len(existing.Specifiers))
	for _, s := range existing.Specifiers {
		seen[s] = true
	}
	for _, s := range incoming.Specifiers {
		if !seen[s] {
			seen[s] = true
			out.Specifiers = append(out.Specifiers, s)
		}
	}
	if incoming.Category != "" {
		out.Category = incoming.Category
	}
	if len(incoming.Constraints.Years) > 0 {
		out.Constraints.Years = incoming.Constraints.Years
	}
	if incoming.Constraints.Range != nil {
		out.Constraints.Range = incoming.Constraints.Range
	}
	if incoming.Constraints.Before != nil {
		out.Constraints.Before = incoming.Constraints.Before
	}
	if incoming.Constraints.After != nil {
		out.Constraints.After = incoming.Constraints.After
	}
	out.UserCreated = true
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPattern(row rowScanner) (pattern.Pattern, error) {
	var (
		p                       pattern.Pattern
		age, specifiers, years  string
		numRange, before, after sql.NullString
	)
	if err := row.Scan(&p.Name, &age, &p.Category, &specifiers, &years, &numRange, &before, &after); err != nil {
		return pattern.Pattern{}, err
	}
	if a, ok := pattern.ParseAge(age); ok {
		p.Age = a
	}
	// The JSON columns are written by us; a decode failure means a
	// hand-edited row and is treated like any other malformed constraint.
	_ = json.Unmarshal([]byte(specifiers), &p.Specifiers)
	_ = json.Unmarshal([]byte(years), &p.Constraints.Years)
	if numRange.Valid {
		p.Constraints.Range = pattern.ParseRange(numRange.String)
	}
	if before.Valid {
		p.Constraints.Before = pattern.ParseDate(before.String)
	}
	if after.Valid {
		p.Constraints.After = pattern.ParseDate(after.String)
	}
	p.UserCreated = true
	return p, nil
}

func insertPattern(ctx context.Context, tx *sql.Tx, p pattern.Pattern) error {
	specifiers, years, numRange, before, after := encodeColumns(p)
	_, err := tx.ExecContext(ctx,
		`INSERT INTO user_patterns(name, age, category, specifiers, years, num_range, date_before, date_after) VALUES(?,?,?,?,?,?,?,?)`,
		p.Name, string(p.Age), p.Category, specifiers, years, numRange, before, after)
	return err
}

func updatePattern(ctx context.Context, tx *sql.Tx, p pattern.Pattern) error {
	specifiers, years, numRange, before, after := encodeColumns(p)
	_, err := tx.ExecContext(ctx,
		`UPDATE user_patterns SET category = ?, specifiers = ?, years = ?, num_range = ?, date_before = ?, date_after = ?, updated_at = CURRENT_TIMESTAMP WHERE name = ? AND age = ?`,
		p.Category, specifiers, years, numRange, before, after, p.Name, string(p.Age))
	return err
}

func encodeColumns(p pattern.Pattern) (specifiers, years string, numRange, before, after any) {
	sb := []byte("[]")
	if len(p.Specifiers) > 0 {
		sb, _ = json.Marshal(p.Specifiers)
	}
	yb := []byte("[]")
	if len(p.Constraints.Years) > 0 {
		yb, _ = json.Marshal(p.Constraints.Years)
	}
	if p.Constraints.Range != nil {
		numRange = p.Constraints.Range.String()
	}
	if p.Constraints.Before != nil {
		before = p.Constraints.Before.Format(pattern.DateLayout)
	}
	if p.Constraints.After != nil {
		after = p.Constraints.After.Format(pattern.DateLayout)
	}
	return string(sb), string(yb), numRange, before, after
}
