package location

import (
	"context"
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

// --------------------------------------------------
// Nearest record within radiusMeters, or (nil, nil)
// --------------------------------------------------
func (r *PostgresRepository) FindNearest(
	ctx context.Context,
	username string,
	longitude, latitude, radiusMeters float64,
) (*ReportedLocation, error) {

	query := `
		SELECT id, username, longitude, latitude, reported_at, created_at
		FROM reported_locations
		WHERE username = $1
		  AND ST_DWithin(
			geom::geography,
			ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography,
			$4
		  )
		ORDER BY geom::geography <-> ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography
		LIMIT 1
	`

	var loc ReportedLocation
	err := r.db.QueryRow(ctx, query, username, longitude, latitude, radiusMeters).Scan(
		&loc.ID,
		&loc.Username,
		&loc.Longitude,
		&loc.Latitude,
		&loc.Reported,
		&loc.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &loc, nil
}

// --------------------------------------------------
// Create or fully replace, keyed by id
// --------------------------------------------------
func (r *PostgresRepository) Upsert(ctx context.Context, loc *ReportedLocation) error {
	query := `
		INSERT INTO reported_locations (
			id,
			username,
			longitude,
			latitude,
			geom,
			reported_at,
			created_at
		)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			longitude = EXCLUDED.longitude,
			latitude = EXCLUDED.latitude,
			geom = EXCLUDED.geom,
			reported_at = EXCLUDED.reported_at
	`

	_, err := r.db.Exec(
		ctx,
		query,
		loc.ID,
		loc.Username,
		loc.Longitude,
		loc.Latitude,
		loc.Reported,
		loc.CreatedAt,
	)
	return err
}

// --------------------------------------------------
// Full history for a user (no time filtering here)
// --------------------------------------------------
func (r *PostgresRepository) FindAllByUser(ctx context.Context, username string) ([]*ReportedLocation, error) {
	query := `
		SELECT id, username, longitude, latitude, reported_at, created_at
		FROM reported_locations
		WHERE username = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*ReportedLocation

	for rows.Next() {
		var loc ReportedLocation
		if err := rows.Scan(
			&loc.ID,
			&loc.Username,
			&loc.Longitude,
			&loc.Latitude,
			&loc.Reported,
			&loc.CreatedAt,
		); err != nil {
			return nil, err
		}
		locations = append(locations, &loc)
	}

	return locations, rows.Err()
}
