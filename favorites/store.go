// Package favorites persists the user's saved (station, route) pairs.
package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/nyctransithub/transit-hub/config"
)

// Entry is one saved favorite
type Entry struct {
	Station string `json:"station" binding:"required"`
	Route   string `json:"route" binding:"required"`
}

// Store is the favorites persistence contract. Every call is a single
// independent statement.
type Store interface {
	Add(ctx context.Context, e Entry) error
	List(ctx context.Context) ([]Entry, error)
	// Remove deletes every row matching e and reports how many were removed
	Remove(ctx context.Context, e Entry) (int64, error)
	Close() error
}

// ErrInvalidEntry is returned when station or route is empty
var ErrInvalidEntry = errors.New("station and route are required")

func validate(e Entry) error {
	if e.Station == "" || e.Route == "" {
		return ErrInvalidEntry
	}
	return nil
}

// Open returns the store selected by cfg.Driver
func Open(ctx context.Context, cfg config.FavoritesConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		s, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown favorites driver %q", cfg.Driver)
	}
}
