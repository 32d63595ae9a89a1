package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("Connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return pool
}

// initSchema creates or updates the database schema.
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// PostGIS supplies the nearest-within-radius query
	if _, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS postgis"); err != nil {
		return err
	}

	// -------------------------------
	// USERS
	// -------------------------------
	userTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, userTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// REPORTED LOCATIONS
	// -------------------------------
	locationTableSQL := `
		CREATE TABLE IF NOT EXISTS reported_locations (
			id UUID PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			geom GEOMETRY(Point, 4326) NOT NULL,
			reported_at TIMESTAMPTZ[] NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := pool.Exec(ctx, locationTableSQL); err != nil {
		return err
	}

	gistIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_reported_locations_geom
		ON reported_locations USING GIST (geom)
	`
	if _, err := pool.Exec(ctx, gistIndexSQL); err != nil {
		return err
	}

	userIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_reported_locations_username
		ON reported_locations (username)
	`
	if _, err := pool.Exec(ctx, userIndexSQL); err != nil {
		return err
	}

	// -------------------------------
	// LOCATION GRIDS
	// -------------------------------
	gridTableSQL := `
		CREATE TABLE IF NOT EXISTS location_grids (
			username VARCHAR(255) PRIMARY KEY,
			days JSONB NOT NULL DEFAULT '{}'::jsonb,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, gridTableSQL); err != nil {
		return err
	}

	log.Println("Schema initialized")
	return nil
}
