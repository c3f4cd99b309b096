// Package service implements the three treasure hunt operations: bury,
// dig, and search.
//
// The service is a thin orchestration layer. It validates the raw
// inputs, queries or mutates the store, and applies the redaction rules
// that decide how much of a found treasure each operation may reveal.
// It holds no treasure state of its own; the store is the single source
// of truth.
package service

import (
	"errors"
	"sync"

	"github.com/aanand-mishra/treasure-hunt-api/internal/storage"
	"github.com/aanand-mishra/treasure-hunt-api/internal/types"
	"github.com/aanand-mishra/treasure-hunt-api/internal/validation"
)

// Proximity thresholds, in feet.
//
// Digging demands near-exact coordinates; searching sweeps a much wider
// circle but reveals much less (see Search).
const (
	DigDistance    = 4
	SearchDistance = 30
)

// ErrAlreadyBuried is returned by Bury when another treasure already
// occupies the target spot (anything within DigDistance of it). The
// message is surfaced to clients verbatim.
var ErrAlreadyBuried = errors.New("A treasure is already buried here")

// Service orchestrates bury/dig/search against a storage backend.
type Service struct {
	store storage.Storage

	// mu serializes the check-then-mutate sequences: bury's
	// collision-check-then-insert and dig's find-then-delete. Without
	// it two concurrent buries could both pass the collision check, or
	// two concurrent digs could both claim the same treasure.
	mu sync.Mutex
}

// New returns a Service backed by the given store.
func New(store storage.Storage) *Service {
	return &Service{store: store}
}

// Bury validates the inputs and buries a new treasure at the given
// coordinates.
//
// All three inputs are validated before the store is touched; the first
// failure is returned as-is (a *validation.FieldError) and nothing is
// persisted. A spot already occupied within DigDistance fails with
// ErrAlreadyBuried. The anti-collision check uses the dig radius, not
// the search radius: two treasures 5 ft apart are legal, they just
// cannot be dug up from the same spot.
func (s *Service) Bury(req types.BuryRequest) error {
	name, err := validation.ItemName(req.ItemName)
	if err != nil {
		return err
	}

	lat, err := validation.Coordinate(req.Latitude, "latitude")
	if err != nil {
		return err
	}

	lon, err := validation.Coordinate(req.Longitude, "longitude")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.FindNearestTreasure(lat, lon, DigDistance)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyBuried
	}

	if _, err := s.store.CreateTreasure(name, lat, lon); err != nil {
		return err
	}

	return nil
}

// Dig looks for a treasure within DigDistance of the given point and,
// if one is there, removes it and returns it. Once dug, the treasure is
// gone for everyone.
//
// The returned treasure has its ID redacted (nil) but keeps its name
// and coordinates: the digger earned the reveal. A nil treasure with a
// nil error means nothing was buried there, which is an ordinary
// outcome, not an error.
func (s *Service) Dig(req types.LocateRequest) (*types.Treasure, error) {
	lat, err := validation.Coordinate(req.Latitude, "latitude")
	if err != nil {
		return nil, err
	}

	lon, err := validation.Coordinate(req.Longitude, "longitude")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	treasure, err := s.store.FindNearestTreasure(lat, lon, DigDistance)
	if err != nil {
		return nil, err
	}
	if treasure == nil {
		return nil, nil
	}

	if err := s.store.DeleteTreasureByID(*treasure.ID); err != nil {
		return nil, err
	}

	treasure.ID = nil
	return treasure, nil
}

// Search looks for a treasure within SearchDistance of the given point
// without disturbing it. The searcher learns only that something is
// nearby and how far away it is: both ID and Name are redacted before
// the treasure is returned.
//
// Search never mutates state, so it does not take the mutex; a
// concurrent dig simply wins or loses the race at the store.
func (s *Service) Search(req types.LocateRequest) (*types.Treasure, error) {
	lat, err := validation.Coordinate(req.Latitude, "latitude")
	if err != nil {
		return nil, err
	}

	lon, err := validation.Coordinate(req.Longitude, "longitude")
	if err != nil {
		return nil, err
	}

	treasure, err := s.store.FindNearestTreasure(lat, lon, SearchDistance)
	if err != nil {
		return nil, err
	}
	if treasure == nil {
		return nil, nil
	}

	treasure.ID = nil
	treasure.Name = nil
	return treasure, nil
}
