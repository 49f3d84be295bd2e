package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/farxc/listagem-empenhos/internal/sheet"
)

// RowStore persists a single worksheet-like dataset as a header plus an
// ordered list of rows. The whole sheet lives in one record so WriteAll is
// a single atomic overwrite, which is all the consistency this layer
// guarantees (last write wins).
type RowStore struct {
	db    *sqlx.DB
	sheet string
}

func (rs *RowStore) ReadAll(ctx context.Context) (sheet.Table, error) {
	var raw struct {
		Header []byte `db:"header"`
		Rows   []byte `db:"rows"`
	}

	query := `SELECT header, rows FROM sheets WHERE name = $1`
	err := rs.db.GetContext(ctx, &raw, query, rs.sheet)
	if errors.Is(err, sql.ErrNoRows) {
		return sheet.Table{}, nil
	}
	if err != nil {
		return sheet.Table{}, fmt.Errorf("reading sheet %q: %w", rs.sheet, err)
	}

	var t sheet.Table
	if err := json.Unmarshal(raw.Header, &t.Header); err != nil {
		return sheet.Table{}, fmt.Errorf("decoding sheet %q header: %w", rs.sheet, err)
	}
	if err := json.Unmarshal(raw.Rows, &t.Rows); err != nil {
		return sheet.Table{}, fmt.Errorf("decoding sheet %q rows: %w", rs.sheet, err)
	}
	return t, nil
}

func (rs *RowStore) WriteAll(ctx context.Context, t sheet.Table) error {
	header, err := json.Marshal(t.Header)
	if err != nil {
		return err
	}
	rows := t.Rows
	if rows == nil {
		rows = [][]any{}
	}
	body, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	query := `INSERT INTO sheets (name, header, rows, updated_at)
		VALUES ($1, $2::jsonb, $3::jsonb, now())
		ON CONFLICT (name) DO UPDATE
		SET header = EXCLUDED.header, rows = EXCLUDED.rows, updated_at = now()`

	if _, err := rs.db.ExecContext(ctx, query, rs.sheet, string(header), string(body)); err != nil {
		return fmt.Errorf("writing sheet %q: %w", rs.sheet, err)
	}
	return nil
}

// UpdateCell writes a single cell in place. Coordinates are 1-indexed sheet
// coordinates: row 1 is the header, data rows start at 2.
func (rs *RowStore) UpdateCell(ctx context.Context, rowNumber, colNumber int, value any) error {
	if rowNumber < 2 {
		return fmt.Errorf("row %d is not a data row", rowNumber)
	}
	if colNumber < 1 {
		return fmt.Errorf("column %d out of range", colNumber)
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}

	query := `UPDATE sheets
		SET rows = jsonb_set(rows, $2, $3::jsonb), updated_at = now()
		WHERE name = $1`

	path := fmt.Sprintf("{%d,%d}", rowNumber-2, colNumber-1)
	res, err := rs.db.ExecContext(ctx, query, rs.sheet, path, string(encoded))
	if err != nil {
		return fmt.Errorf("updating cell (%d,%d) on sheet %q: %w", rowNumber, colNumber, rs.sheet, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("sheet %q does not exist", rs.sheet)
	}
	return nil
}
