// Package store archives placement runs so they can be retrieved later by
// ID, compared across netlist revisions, or served by the HTTP API.
//
// Two backends are provided:
//   - memory: in-process storage for tests and single-shot CLI runs
//   - mongo: MongoDB-backed storage for service deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/symplace/symplace/pkg/floorplan"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no record exists for the requested ID.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when saving a record whose ID is taken.
	ErrDuplicateID = errors.New("duplicate record ID")
)

// Record is one archived placement run.
type Record struct {
	// ID is the run's UUID assigned by the pipeline.
	ID string `json:"id" bson:"_id"`

	// NetlistHash is the content hash of the input netlist.
	NetlistHash string `json:"netlist_hash" bson:"netlist_hash"`

	// Placement is the final placement of the run.
	Placement floorplan.Placement `json:"placement" bson:"placement"`

	// Area is the total bounding-box area over all placed modules.
	Area int `json:"area" bson:"area"`

	// Iterations and Seed record the annealing options of the run.
	Iterations int    `json:"iterations" bson:"iterations"`
	Seed       uint64 `json:"seed" bson:"seed"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store is the interface for placement archives.
type Store interface {
	// Save archives a record. Returns ErrDuplicateID if the ID is taken.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns ErrNotFound if missing.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns the most recent records, newest first, up to limit.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
