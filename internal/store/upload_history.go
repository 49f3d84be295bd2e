package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type UploadHistoryStore struct {
	db *sqlx.DB
}

func (s *UploadHistoryStore) Insert(ctx context.Context, record *UploadRecord) error {
	query := `INSERT INTO upload_history (
		id,
		username,
		filename,
		rows_processed,
		rows_total,
		status,
		processed_at
	) VALUES (
		:id,
		:username,
		:filename,
		:rows_processed,
		:rows_total,
		:status,
		:processed_at
	)`

	_, err := s.db.NamedExecContext(ctx, query, record)
	return err
}

func (s *UploadHistoryStore) GetLatest(ctx context.Context, limit int) ([]UploadRecord, error) {
	records := []UploadRecord{}

	query := `SELECT id, username, filename, rows_processed, rows_total, status, processed_at
		FROM upload_history
		ORDER BY processed_at DESC
		LIMIT $1`

	if err := s.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, err
	}
	return records, nil
}
