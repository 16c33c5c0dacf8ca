package favorites

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createFavoritesSQL = `
    CREATE TABLE IF NOT EXISTS favorites (
        id BIGSERIAL PRIMARY KEY,
        station TEXT NOT NULL,
        route TEXT NOT NULL
    )
`

// PostgresStore keeps favorites in PostgreSQL through a pgx pool
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to databaseURL and ensures the table exists
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createFavoritesSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Add inserts a favorite
func (s *PostgresStore) Add(ctx context.Context, e Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx,
		"INSERT INTO favorites (station, route) VALUES ($1, $2)", e.Station, e.Route); err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// List returns all favorites in insertion order
func (s *PostgresStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, "SELECT station, route FROM favorites ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Station, &e.Route); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Remove deletes every favorite matching e
func (s *PostgresStore) Remove(ctx context.Context, e Entry) (int64, error) {
	if err := validate(e); err != nil {
		return 0, err
	}
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM favorites WHERE station = $1 AND route = $2", e.Station, e.Route)
	if err != nil {
		return 0, fmt.Errorf("delete favorite: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Close releases the pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
