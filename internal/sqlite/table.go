package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/repository"
)

const revisionKey = "revision"

// TableRepository implements repository.TableRepository for SQLite. The
// table holds canonical columns only, so Load returns a canonical header.
type TableRepository struct {
	db *DB
}

// NewTableRepository creates a new TableRepository
func NewTableRepository(db *DB) *TableRepository {
	return &TableRepository{db: db}
}

func columnList() string {
	names := make([]string, len(inventory.CanonicalColumns))
	for i, c := range inventory.CanonicalColumns {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Load returns every stored row in position order. A database that was
// never saved to has no revision and reports ErrSourceNotFound.
func (r *TableRepository) Load(ctx context.Context) (inventory.RawTable, repository.Version, error) {
	version, err := r.Version(ctx)
	if err != nil {
		return inventory.RawTable{}, "", err
	}

	query := `SELECT ` + columnList() + ` FROM items ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return inventory.RawTable{}, "", fmt.Errorf("failed to load items: %w", err)
	}
	defer rows.Close()

	header := make([]string, len(inventory.CanonicalColumns))
	for i, c := range inventory.CanonicalColumns {
		header[i] = string(c)
	}
	table := inventory.RawTable{Header: header}

	for rows.Next() {
		row := make([]string, len(header))
		dest := make([]interface{}, len(header))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return inventory.RawTable{}, "", fmt.Errorf("failed to scan item: %w", err)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return inventory.RawTable{}, "", fmt.Errorf("error iterating items: %w", err)
	}

	return table, version, nil
}

// Save replaces all rows in one transaction and bumps the revision. Columns
// of table that are not canonical are ignored.
func (r *TableRepository) Save(ctx context.Context, table inventory.RawTable) (repository.Version, error) {
	source := make(map[inventory.Column]int, len(table.Header))
	for j, h := range table.Header {
		c := inventory.Column(h)
		if _, seen := source[c]; !seen {
			source[c] = j
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return "", fmt.Errorf("failed to clear items: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(inventory.CanonicalColumns)+1), ", ")
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (position, `+columnList()+`) VALUES (`+placeholders+`)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range table.Rows {
		args := make([]interface{}, 0, len(inventory.CanonicalColumns)+1)
		args = append(args, i)
		for _, c := range inventory.CanonicalColumns {
			v := inventory.DefaultValue(c)
			if j, ok := source[c]; ok {
				v = table.Cell(i, j)
			}
			args = append(args, v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return "", fmt.Errorf("failed to insert item %d: %w", i, err)
		}
	}

	var revision int64
	err = tx.QueryRowContext(ctx, `SELECT value FROM table_meta WHERE key = ?`, revisionKey).Scan(&revision)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("failed to read revision: %w", err)
	}
	revision++

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO table_meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		revisionKey, strconv.FormatInt(revision, 10)); err != nil {
		return "", fmt.Errorf("failed to write revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	return revisionVersion(revision), nil
}

// Version returns the stored revision.
func (r *TableRepository) Version(ctx context.Context) (repository.Version, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM table_meta WHERE key = ?`, revisionKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: database has no saved table", repository.ErrSourceNotFound)
		}
		return "", fmt.Errorf("failed to read revision: %w", err)
	}
	revision, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return "", &repository.MalformedTableError{Path: "table_meta", Reason: "revision is not a number", Err: err}
	}
	return revisionVersion(revision), nil
}

func revisionVersion(rev int64) repository.Version {
	return repository.Version("rev-" + strconv.FormatInt(rev, 10))
}
