package grid

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByUser(ctx context.Context, username string) (*Grid, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `
		SELECT days
		FROM location_grids
		WHERE username = $1
	`, username).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	g := NewGrid(username)
	if err := json.Unmarshal(raw, &g.Days); err != nil {
		return nil, err
	}

	return g, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, g *Grid) error {
	raw, err := json.Marshal(g.Days)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO location_grids (username, days, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (username) DO UPDATE SET
			days = EXCLUDED.days,
			updated_at = NOW()
	`, g.Username, raw)
	return err
}
