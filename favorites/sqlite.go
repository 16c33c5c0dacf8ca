package favorites

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps favorites in a local SQLite file
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS favorites (
		id INTEGER PRIMARY KEY,
		station TEXT,
		route TEXT
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Add inserts a favorite
func (s *SQLiteStore) Add(ctx context.Context, e Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO favorites (station, route) VALUES (?, ?)", e.Station, e.Route); err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// List returns all favorites in insertion order
func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT station, route FROM favorites ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var station, route sql.NullString
		if err := rows.Scan(&station, &route); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		entries = append(entries, Entry{Station: station.String, Route: route.String})
	}
	return entries, rows.Err()
}

// Remove deletes every favorite matching e
func (s *SQLiteStore) Remove(ctx context.Context, e Entry) (int64, error) {
	if err := validate(e); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE station = ? AND route = ?", e.Station, e.Route)
	if err != nil {
		return 0, fmt.Errorf("delete favorite: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
