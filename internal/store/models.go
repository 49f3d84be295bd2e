package store

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "Administrador"
	RoleUser  = "Usuário"
)

const (
	UploadStatusSuccess = "SUCCESS"
	UploadStatusFailure = "FAILURE"
)

// User represents the 'users' table.
type User struct {
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	Department   string    `db:"department" json:"department"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// UploadRecord represents the 'upload_history' table. One record per
// processed upload, whether or not the merge succeeded.
type UploadRecord struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Username      string    `db:"username" json:"username"`
	Filename      string    `db:"filename" json:"filename"`
	RowsProcessed int       `db:"rows_processed" json:"rows_processed"`
	RowsTotal     int       `db:"rows_total" json:"rows_total"`
	Status        string    `db:"status" json:"status"`
	ProcessedAt   time.Time `db:"processed_at" json:"processed_at"`
}
