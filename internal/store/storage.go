package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/farxc/listagem-empenhos/internal/sheet"
)

type Storage struct {
	Rows interface {
		ReadAll(ctx context.Context) (sheet.Table, error)
		WriteAll(ctx context.Context, t sheet.Table) error
		UpdateCell(ctx context.Context, rowNumber, colNumber int, value any) error
	}

	Users interface {
		GetByUsername(ctx context.Context, username string) (*User, error)
		Insert(ctx context.Context, user *User) error
	}

	UploadHistory interface {
		Insert(ctx context.Context, record *UploadRecord) error
		GetLatest(ctx context.Context, limit int) ([]UploadRecord, error)
	}
}

func NewStorage(db *sqlx.DB, sheetName string) *Storage {
	return &Storage{
		Rows:          &RowStore{db: db, sheet: sheetName},
		Users:         &UserStore{db: db},
		UploadHistory: &UploadHistoryStore{db: db},
	}
}

// EnsureSchema creates the backing tables when they do not exist yet,
// mirroring how the sheet backend provisioned missing worksheets.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sheets (
			name       text PRIMARY KEY,
			header     jsonb NOT NULL,
			rows       jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			username      text PRIMARY KEY,
			password_hash text NOT NULL,
			role          text NOT NULL,
			department    text NOT NULL,
			created_at    timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS upload_history (
			id             uuid PRIMARY KEY,
			username       text NOT NULL,
			filename       text NOT NULL,
			rows_processed int NOT NULL,
			rows_total     int NOT NULL,
			status         text NOT NULL,
			processed_at   timestamptz NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
