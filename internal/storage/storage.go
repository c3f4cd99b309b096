// Package storage defines the Storage interface: the contract any
// persistence backend must satisfy to work with this application.
//
// The service layer depends only on this interface, never on a concrete
// database. Swapping SQLite for another engine means implementing these
// three methods and changing one line in main.go; tests substitute an
// in-memory fake the same way.
package storage

import (
	"errors"

	"github.com/aanand-mishra/treasure-hunt-api/internal/types"
)

// ErrTreasureNotFound is returned by DeleteTreasureByID when no row has
// the given id. The service always confirms existence before deleting,
// so seeing this error indicates an unexpected fault rather than a
// normal outcome.
var ErrTreasureNotFound = errors.New("treasure not found")

// Storage is the persistence contract for treasure records.
type Storage interface {
	// FindNearestTreasure returns the closest treasure within
	// maxDistanceFeet of the given point, with its Distance field set
	// to the computed distance in feet. It returns (nil, nil) when no
	// treasure qualifies: "nothing buried here" is an ordinary answer,
	// not an error.
	//
	// Tie-break: when several treasures are exactly equidistant, the
	// one with the lowest id wins.
	FindNearestTreasure(lat, lon, maxDistanceFeet float64) (*types.Treasure, error)

	// CreateTreasure persists a new treasure and returns its
	// auto-generated id. It performs no collision checking; callers
	// enforce the one-treasure-per-spot rule before inserting.
	CreateTreasure(name string, lat, lon float64) (int64, error)

	// DeleteTreasureByID removes a treasure permanently. Returns
	// ErrTreasureNotFound if no row has that id.
	DeleteTreasureByID(id int64) error
}
