package users

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresDirectory struct {
	db *pgxpool.Pool
}

func NewPostgresDirectory(db *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := d.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM users
			WHERE username = $1
		)
	`, username).Scan(&exists)

	return exists, err
}

func (d *PostgresDirectory) FindByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := d.db.QueryRow(ctx, `
		SELECT id, username, password, created_at
		FROM users
		WHERE username = $1
	`, username).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
