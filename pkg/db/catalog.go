// Package db stores the part-template catalog in SQLite.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/yumyai/genecanvas/internal/util"

	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS part_templates (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		category TEXT NOT NULL,
		length   INTEGER NOT NULL,
		sequence TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS part_templates_category ON part_templates (category);
`

// Catalog is the SQLite-backed template store. It satisfies TemplateLookup.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog file at path.
func Open(path string) (*Catalog, error) {
	if err := util.EnsureParentDir(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	return NewCatalog(db)
}

// NewCatalog wraps an already opened database and makes sure the schema
// exists.
func NewCatalog(db *sql.DB) (*Catalog, error) {
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Put inserts t or replaces the template with the same id.
func (c *Catalog) Put(ctx context.Context, t Template) error {
	return c.PutAll(ctx, []Template{t})
}

// PutAll validates every template first and writes nothing if any of them is
// invalid. The write itself is one transaction.
func (c *Catalog) PutAll(ctx context.Context, templates []Template) error {
	normalized := make([]Template, len(templates))
	var errs error
	for i, t := range templates {
		normalized[i] = t.normalize()
		errs = multierr.Append(errs, normalized[i].Validate())
	}
	if errs != nil {
		return errs
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stm, err := tx.PrepareContext(ctx, `
		INSERT INTO part_templates (id, name, category, length, sequence)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			length = excluded.length,
			sequence = excluded.sequence`)
	if err != nil {
		return err
	}
	defer stm.Close()

	for _, t := range normalized {
		if _, err := stm.ExecContext(ctx, t.ID, t.Name, t.Category, t.Length, t.Sequence); err != nil {
			return fmt.Errorf("store template %q: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

func (c *Catalog) Template(ctx context.Context, id string) (Template, error) {
	var t Template
	err := c.db.QueryRowContext(ctx,
		`SELECT id, name, category, length, sequence FROM part_templates WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Category, &t.Length, &t.Sequence)
	if errors.Is(err, sql.ErrNoRows) {
		return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	if err != nil {
		return Template{}, err
	}
	return t, nil
}

// Templates lists templates ordered by category and name. An empty category
// lists all of them.
func (c *Catalog) Templates(ctx context.Context, category string) ([]Template, error) {
	qstring := `SELECT id, name, category, length, sequence FROM part_templates`
	args := []any{}
	if category = strings.ToLower(strings.TrimSpace(category)); category != "" {
		qstring += ` WHERE category = ?`
		args = append(args, category)
	}
	qstring += ` ORDER BY category, name, id`

	rows, err := c.db.QueryContext(ctx, qstring, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]Template, 0, 16)
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Length, &t.Sequence); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Delete removes a template. Removing a missing id is ErrTemplateNotFound.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM part_templates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return nil
}
