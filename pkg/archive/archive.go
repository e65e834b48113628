// Package archive persists dated snapshots of the fetched record set, so
// that a report can be rebuilt later from exactly the data it was based on.
//
// Two backends are available:
//   - FileStore: a directory of JSON files (default for CLI use)
//   - MongoStore: a MongoDB collection for shared deployments
package archive

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/daimidata/daimidata/pkg/phd"
)

// Snapshot is one archived fetch of the source page.
type Snapshot struct {
	ID        string       `json:"id" bson:"_id"`
	FetchedAt time.Time    `json:"fetched_at" bson:"fetched_at"`
	Source    string       `json:"source" bson:"source"`
	Records   []phd.Record `json:"records" bson:"records"`
}

// Info is the snapshot metadata shown in listings.
type Info struct {
	ID        string    `json:"id" bson:"_id"`
	FetchedAt time.Time `json:"fetched_at" bson:"fetched_at"`
	Count     int       `json:"count" bson:"count"`
}

// NewSnapshot wraps a record set in a snapshot with a fresh id and the
// current time.
func NewSnapshot(source string, records []phd.Record) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		FetchedAt: time.Now().UTC(),
		Source:    source,
		Records:   records,
	}
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Save persists a snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Get retrieves a snapshot by id. Returns nil, nil when it doesn't exist.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Latest returns the most recently fetched snapshot, or nil, nil when
	// the archive is empty.
	Latest(ctx context.Context) (*Snapshot, error)

	// List returns metadata for all snapshots, newest first.
	List(ctx context.Context) ([]Info, error)

	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}
