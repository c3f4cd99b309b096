package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemName_Valid(t *testing.T) {
	for _, name := range []string{
		"Gold Coin 123",
		"x",
		"7",
		"Ring",
		"Ancient Map Fragment 2",
		strings.Repeat("a", 100),
	} {
		got, err := ItemName(name)
		require.NoError(t, err, "name %q should validate", name)
		assert.Equal(t, name, got)
	}
}

func TestItemName_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"empty", "", EmptyInput},
		{"symbols only", "@@@", InvalidFormat},
		{"leading space", " Gold Coin", InvalidFormat},
		{"punctuation", "Gold-Coin", InvalidFormat},
		{"101 characters", strings.Repeat("a", 101), TooLong},
		{"101 illegal characters reports format first", strings.Repeat("@", 101), InvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ItemName(tt.input)
			require.Error(t, err)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.wantCode, fieldErr.Code)
			assert.Equal(t, "item-name", fieldErr.Field)
			assert.NotEmpty(t, fieldErr.Message)
		})
	}
}

func TestItemName_ErrorMessages(t *testing.T) {
	_, err := ItemName("")
	assert.EqualError(t, err, "No item name provided")

	_, err = ItemName(strings.Repeat("a", 101))
	assert.EqualError(t, err, "Item name must be less than 100 characters long")
}

func TestCoordinate_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"34.05", 34.05},
		{"-118.2437", -118.2437},
		{"0", 0},
		{"90", 90},
		// Every spelling ParseFloat accepts is a valid coordinate.
		{"1e-4", 0.0001},
		{".5", 0.5},
		{"1E5", 100000},
		{"+12.25", 12.25},
	}

	for _, tt := range tests {
		got, err := Coordinate(tt.input, "latitude")
		require.NoError(t, err, "coordinate %q should validate", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestCoordinate_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"missing", "", EmptyInput},
		{"letters", "abc", NotNumeric},
		{"trailing garbage", "34.05x", NotNumeric},
		// Parseable floats that are still not coordinates.
		{"not a number token", "NaN", NotNumeric},
		{"infinity token", "Inf", NotNumeric},
		{"negative infinity token", "-Inf", NotNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coordinate(tt.input, "latitude")
			require.Error(t, err)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.wantCode, fieldErr.Code)
		})
	}
}

func TestCoordinate_AxisNameAppearsInMessage(t *testing.T) {
	_, err := Coordinate("", "latitude")
	assert.EqualError(t, err, "No latitude provided")

	_, err = Coordinate("abc", "longitude")
	assert.EqualError(t, err, "Value for longitude must be numeric")
}
