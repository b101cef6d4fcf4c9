package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// CatalogStore performs CRUD against the six catalog tables through the
// static schema registry.
type CatalogStore struct {
	db *sql.DB
}

func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// List returns every row of a catalog table ordered for display. parentID
// scopes formats/styles to one product and is ignored for flat catalogs.
func (s *CatalogStore) List(ctx context.Context, resource string, parentID *int64) ([]map[string]any, error) {
	sc, ok := LookupSchema(resource)
	if !ok {
		return nil, ErrUnknownResource
	}

	scoped := parentID != nil && sc.ParentCol != ""
	var args []any
	if scoped {
		args = append(args, *parentID)
	}

	rows, err := s.db.QueryContext(ctx, listQuery(sc, scoped), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", sc.Name, err)
	}
	defer rows.Close()

	result := make([]map[string]any, 0)
	for rows.Next() {
		row, err := scanRow(sc, rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", sc.Name, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", sc.Name, err)
	}

	return result, nil
}

func (s *CatalogStore) Get(ctx context.Context, resource string, id int64) (map[string]any, error) {
	sc, ok := LookupSchema(resource)
	if !ok {
		return nil, ErrUnknownResource
	}

	query := "SELECT " + sc.selectList() + " FROM " + sc.Table + " WHERE id = $1"
	row, err := scanRow(sc, s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %d: %w", sc.Name, id, err)
	}

	return row, nil
}

// Create inserts a new row. Every registered column is written; fields absent
// from the request are stored as NULL. Keys outside the registry are ignored.
func (s *CatalogStore) Create(ctx context.Context, resource string, fields map[string]any) (map[string]any, error) {
	sc, ok := LookupSchema(resource)
	if !ok {
		return nil, ErrUnknownResource
	}

	row, err := insertRow(ctx, s.db, sc, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", sc.Name, err)
	}

	return row, nil
}

// Update is a full replace: every registered column is rewritten from the
// request, so a field absent from the body becomes NULL rather than keeping
// its prior value.
func (s *CatalogStore) Update(ctx context.Context, resource string, id int64, fields map[string]any) (map[string]any, error) {
	sc, ok := LookupSchema(resource)
	if !ok {
		return nil, ErrUnknownResource
	}

	args := make([]any, 0, len(sc.Columns)+1)
	for _, col := range sc.Columns {
		args = append(args, coerceValue(col.Kind, fields[col.Name]))
	}
	args = append(args, id)

	row, err := scanRow(sc, s.db.QueryRowContext(ctx, updateQuery(sc), args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s %d: %w", sc.Name, id, err)
	}

	return row, nil
}

// Delete removes a row if present. A missing row is not an error.
func (s *CatalogStore) Delete(ctx context.Context, resource string, id int64) error {
	sc, ok := LookupSchema(resource)
	if !ok {
		return ErrUnknownResource
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM "+sc.Table+" WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", sc.Name, id, err)
	}

	return nil
}

// ReplaceAll swaps the whole table for the provided rows, in order. The
// delete and re-inserts run inside one transaction so readers never observe
// an empty table mid-save.
func (s *CatalogStore) ReplaceAll(ctx context.Context, resource string, rows []map[string]any) ([]map[string]any, error) {
	sc, ok := LookupSchema(resource)
	if !ok {
		return nil, ErrUnknownResource
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+sc.Table); err != nil {
		return nil, fmt.Errorf("failed to clear %s: %w", sc.Name, err)
	}

	stored := make([]map[string]any, 0, len(rows))
	for _, fields := range rows {
		row, err := insertRow(ctx, tx, sc, fields)
		if err != nil {
			return nil, fmt.Errorf("failed to insert %s row: %w", sc.Name, err)
		}
		stored = append(stored, row)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit %s replace: %w", sc.Name, err)
	}

	return stored, nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertRow(ctx context.Context, q querier, sc *Schema, fields map[string]any) (map[string]any, error) {
	args := make([]any, 0, len(sc.Columns))
	for _, col := range sc.Columns {
		args = append(args, coerceValue(col.Kind, fields[col.Name]))
	}
	return scanRow(sc, q.QueryRowContext(ctx, insertQuery(sc), args...))
}

// listQuery builds the display-ordered SELECT for a catalog table,
// optionally scoped to the parent product.
func listQuery(sc *Schema, scoped bool) string {
	query := "SELECT " + sc.selectList() + " FROM " + sc.Table
	if scoped && sc.ParentCol != "" {
		query += " WHERE " + sc.ParentCol + " = $1"
	}
	return query + " ORDER BY sort_order ASC NULLS LAST, id ASC"
}

// updateQuery builds the full-replace UPDATE: every registered column is in
// the SET list, so absent fields are written as NULL.
func updateQuery(sc *Schema) string {
	query := "UPDATE " + sc.Table + " SET "
	for i, col := range sc.Columns {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("%s = $%d", col.Name, i+1)
	}
	return query + fmt.Sprintf(", updated_at = NOW() WHERE id = $%d RETURNING %s", len(sc.Columns)+1, sc.selectList())
}

func insertQuery(sc *Schema) string {
	cols := ""
	params := ""
	for i, col := range sc.Columns {
		if i > 0 {
			cols += ", "
			params += ", "
		}
		cols += col.Name
		params += fmt.Sprintf("$%d", i+1)
	}
	return "INSERT INTO " + sc.Table + " (" + cols + ") VALUES (" + params + ") RETURNING " + sc.selectList()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(sc *Schema, scanner rowScanner) (map[string]any, error) {
	names := sc.scanNames()
	values := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := scanner.Scan(ptrs...); err != nil {
		return nil, err
	}

	row := make(map[string]any, len(names))
	for i, name := range names {
		row[name] = normalizeValue(sc.columnKind(name), values[i])
	}
	return row, nil
}

// normalizeValue converts driver byte slices into JSON-friendly values.
func normalizeValue(kind ColumnKind, v any) any {
	raw, ok := v.([]byte)
	if !ok {
		return v
	}
	if kind == KindJSON {
		return json.RawMessage(raw)
	}
	return string(raw)
}

// coerceValue maps decoded JSON values onto column types. Booleans accept the
// tri-state spellings older admin builds send (0/1, "0"/"1", "true"/"false");
// anything unrecognized passes through for the datastore to judge.
func coerceValue(kind ColumnKind, v any) any {
	if v == nil {
		return nil
	}
	switch kind {
	case KindBool:
		switch b := v.(type) {
		case bool:
			return b
		case float64:
			return b != 0
		case string:
			switch b {
			case "1", "true", "t":
				return true
			case "0", "false", "f":
				return false
			}
		}
	case KindInt:
		if f, ok := v.(float64); ok {
			return int64(f)
		}
	case KindJSON:
		switch j := v.(type) {
		case json.RawMessage:
			return []byte(j)
		case []byte:
			return j
		default:
			if buf, err := json.Marshal(v); err == nil {
				return buf
			}
		}
	}
	return v
}
