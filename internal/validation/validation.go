// Package validation checks the raw user inputs (item name, latitude,
// longitude) before they reach the service layer.
//
// Every function here is pure: it takes a raw string and returns either
// the validated (and, for coordinates, parsed) value or a *FieldError
// naming exactly which rule failed. No side effects, no I/O.
//
// The item-name rules run through go-playground/validator's Var API
// rather than hand-rolled string inspection; the custom "itemname" tag
// registered below carries the one rule the library does not ship.
// Coordinates are decided by strconv.ParseFloat, which accepts every
// float spelling clients produce (exponent forms included).
package validation

import (
	"math"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Code identifies which validation rule an input broke.
type Code string

const (
	EmptyInput    Code = "empty_input"
	InvalidFormat Code = "invalid_format"
	TooLong       Code = "too_long"
	NotNumeric    Code = "not_numeric"
)

// FieldError is the structured failure returned by every validator in
// this package. Message is safe to surface to the client verbatim.
type FieldError struct {
	Field   string
	Code    Code
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// itemNamePattern: starts with a letter or digit, followed by any
// number of letters, digits, and spaces (case-insensitive).
var itemNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 ]*$`)

// validate is shared by every check in this package. A single Validate
// instance caches tag metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// "itemname" is our one custom rule; "max" and "numeric" ship
	// with the library.
	_ = v.RegisterValidation("itemname", func(fl validator.FieldLevel) bool {
		return itemNamePattern.MatchString(fl.Field().String())
	})

	return v
}

// ItemName validates the name of an item to bury and returns it
// unchanged on success.
//
// Check order matters: an empty name reports EmptyInput rather than
// InvalidFormat, and a 101-character name of illegal characters reports
// InvalidFormat because format is checked before length.
func ItemName(raw string) (string, error) {
	if raw == "" {
		return "", &FieldError{
			Field:   "item-name",
			Code:    EmptyInput,
			Message: "No item name provided",
		}
	}

	if err := validate.Var(raw, "itemname"); err != nil {
		return "", &FieldError{
			Field: "item-name",
			Code:  InvalidFormat,
			Message: "Item name must be at least one character long and " +
				"can only contain letters, numbers, and spaces",
		}
	}

	if err := validate.Var(raw, "max=100"); err != nil {
		return "", &FieldError{
			Field:   "item-name",
			Code:    TooLong,
			Message: "Item name must be less than 100 characters long",
		}
	}

	return raw, nil
}

// Coordinate validates and parses one geographic coordinate. axis names
// the coordinate ("latitude" or "longitude") and appears only in error
// messages; both axes share the same rules.
func Coordinate(raw, axis string) (float64, error) {
	if raw == "" {
		return 0, &FieldError{
			Field:   axis,
			Code:    EmptyInput,
			Message: "No " + axis + " provided",
		}
	}

	// ParseFloat is the deciding check: anything it parses is numeric,
	// which keeps spellings like "1e-4", ".5", and "1E5" valid. It
	// also parses "NaN" and "Inf" tokens, and those are not
	// coordinates, so they are rejected alongside the unparseable.
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &FieldError{
			Field:   axis,
			Code:    NotNumeric,
			Message: "Value for " + axis + " must be numeric",
		}
	}

	return value, nil
}
