package store

import "context"

// Repository defines the persistence interface for scrape records. Get
// returns (nil, nil) when no record exists under the id. Put fully replaces
// any prior record under the same id.
type Repository interface {
	Get(ctx context.Context, id string) (*Record, error)
	Put(ctx context.Context, rec *Record) error
	List(ctx context.Context) (map[string]Record, error)
	Close() error
}

// Driver names for the configurable store backend.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)
