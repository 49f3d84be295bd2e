package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

type UserStore struct {
	db *sqlx.DB
}

func (us *UserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	var user User

	query := `SELECT username, password_hash, role, department, created_at
		FROM users WHERE username = $1`

	err := us.db.GetContext(ctx, &user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (us *UserStore) Insert(ctx context.Context, user *User) error {
	query := `INSERT INTO users (username, password_hash, role, department)
		VALUES (:username, :password_hash, :role, :department)`

	_, err := us.db.NamedExecContext(ctx, query, user)
	return err
}
