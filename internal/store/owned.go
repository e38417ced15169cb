package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// TableSchema declares an owner-scoped, soft-deleting table.
// Columns is the read projection; it must start with "id".
type TableSchema struct {
	Name    string
	Columns []string
}

func (t TableSchema) projection() string {
	return strings.Join(t.Columns, ", ")
}

// assignment is one "column = value" pair of an UPDATE.
type assignment struct {
	column string
	value  any
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// updateOwned applies sets to the row matching (id, ownerID) and returns the updated row.
// updated_at is always bumped. Soft-deleted rows still match; ErrNotFound is returned
// when no row has that id for that owner.
func updateOwned[T any](
	ctx context.Context,
	db *sql.DB,
	schema TableSchema,
	id, ownerID, now string,
	sets []assignment,
	scan func(rowScanner) (*T, error),
) (*T, error) {
	sets = append(sets, assignment{column: "updated_at", value: now})

	clauses := make([]string, len(sets))
	args := make([]any, 0, len(sets)+2)
	for i, a := range sets {
		clauses[i] = a.column + " = ?"
		args = append(args, a.value)
	}
	args = append(args, id, ownerID)

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = ? AND owner_id = ? RETURNING %s",
		schema.Name,
		strings.Join(clauses, ", "),
		schema.projection(),
	)

	row, err := scan(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update %s row %s: %w", schema.Name, id, err)
	}
	return row, nil
}

// softDeleteOwned stamps deleted_at on the row matching (id, ownerID).
// Re-deleting an already deleted row restamps it.
func softDeleteOwned(ctx context.Context, db *sql.DB, schema TableSchema, id, ownerID, now string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET deleted_at = ?, updated_at = ? WHERE id = ? AND owner_id = ?",
		schema.Name,
	)
	result, err := db.ExecContext(ctx, query, now, now, id, ownerID)
	if err != nil {
		return fmt.Errorf("soft delete %s row %s: %w", schema.Name, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// getOwned reads the active row matching (id, ownerID).
func getOwned[T any](
	ctx context.Context,
	db *sql.DB,
	schema TableSchema,
	id, ownerID string,
	scan func(rowScanner) (*T, error),
) (*T, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE id = ? AND owner_id = ? AND deleted_at IS NULL",
		schema.projection(), schema.Name,
	)

	row, err := scan(db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s row %s: %w", schema.Name, id, err)
	}
	return row, nil
}

// listOwned reads every active row of ownerID ordered by orderBy.
func listOwned[T any](
	ctx context.Context,
	db *sql.DB,
	schema TableSchema,
	ownerID, orderBy string,
	scan func(rowScanner) (*T, error),
) ([]T, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE owner_id = ? AND deleted_at IS NULL ORDER BY %s",
		schema.projection(), schema.Name, orderBy,
	)

	rows, err := db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", schema.Name, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", schema.Name, err)
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", schema.Name, err)
	}
	return out, nil
}
