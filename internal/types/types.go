// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, service, and storage can all import types without depending
// on each other.
package types

// Treasure represents a buried item.
//
// ID and Name are pointers because responses redact them: a dig
// response nils the ID, a search response nils both ID and Name, and
// encoding/json then writes the field as null. The null is part of the
// wire contract, so plain values with omitempty would not do.
//
// Distance is a query-time attribute only. It is never stored; the
// store fills it in with the distance (in feet) from the queried point
// to the treasure's coordinates.
type Treasure struct {
	ID        *int64  `json:"id"`
	Name      *string `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Distance  float64 `json:"distance"`
}

// BuryRequest carries the raw inputs of a bury operation. The fields
// are strings because that is how they arrive at the boundary (form
// values from the geolocation client); parsing and validation happen
// in the service, before any store access.
type BuryRequest struct {
	ItemName  string
	Latitude  string
	Longitude string
}

// LocateRequest carries the raw coordinates of a dig or a search.
type LocateRequest struct {
	Latitude  string
	Longitude string
}
