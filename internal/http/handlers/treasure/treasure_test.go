package treasure

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/treasure-hunt-api/internal/config"
	"github.com/aanand-mishra/treasure-hunt-api/internal/service"
	"github.com/aanand-mishra/treasure-hunt-api/internal/storage/sqlite"
)

// Test coordinates offset the latitude in 0.00001 degree steps, each
// roughly 3.65 ft on the ground, to land at known distances from a
// buried treasure.

// envelope mirrors the wire shape for decoding in assertions. Data
// stays raw so each test can decode it as the type it expects.
type envelope struct {
	Error *string         `json:"error"`
	Data  json.RawMessage `json:"data"`
}

// treasureData is the redacted treasure as it appears on the wire.
type treasureData struct {
	ID       *int64   `json:"id"`
	Name     *string  `json:"name"`
	Distance *float64 `json:"distance"`
}

func newTestHandler(t *testing.T) http.HandlerFunc {
	t.Helper()

	store, err := sqlite.New(&config.Config{
		StoragePath: filepath.Join(t.TempDir(), "treasure-hunt-test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Db.Close() })

	return Action(service.New(store))
}

// post sends a form-encoded request the way the geolocation client
// does and returns the recorded response plus its decoded envelope.
func post(t *testing.T, handler http.HandlerFunc, form url.Values) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/treasure",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	handler(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
		"every response must be a valid JSON envelope")

	return rec, env
}

func buryForm(name, lat, lon string) url.Values {
	return url.Values{
		"action":    {"bury"},
		"item-name": {name},
		"latitude":  {lat},
		"longitude": {lon},
	}
}

func digForm(lat, lon string) url.Values {
	return url.Values{
		"action":    {"dig"},
		"latitude":  {lat},
		"longitude": {lon},
	}
}

func searchForm(lat, lon string) url.Values {
	return url.Values{
		"action":    {"search"},
		"latitude":  {lat},
		"longitude": {lon},
	}
}

func TestBuryDigLifecycle(t *testing.T) {
	handler := newTestHandler(t)

	// Bury a ring.
	rec, env := post(t, handler, buryForm("Ring", "34.0000", "-118.0000"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, env.Error)
	assert.JSONEq(t, `true`, string(env.Data))

	// Dig it back up at the same spot: the digger sees the name and a
	// near-zero distance, but never the id.
	rec, env = post(t, handler, digForm("34.0000", "-118.0000"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, env.Error)

	var dug treasureData
	require.NoError(t, json.Unmarshal(env.Data, &dug))
	require.NotNil(t, dug.Name)
	assert.Equal(t, "Ring", *dug.Name)
	assert.Nil(t, dug.ID)
	require.NotNil(t, dug.Distance)
	assert.InDelta(t, 0, *dug.Distance, 0.001)

	// The id key must be present as null, not merely absent.
	assert.Contains(t, rec.Body.String(), `"id":null`)

	// A second dig at the same spot finds nothing: the removal stuck.
	rec, env = post(t, handler, digForm("34.0000", "-118.0000"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, env.Error)
	assert.JSONEq(t, `null`, string(env.Data))
}

func TestSearchRevealsOnlyDistance(t *testing.T) {
	handler := newTestHandler(t)

	_, env := post(t, handler, buryForm("Gold Coin 123", "34.0000", "-118.0000"))
	require.Nil(t, env.Error)

	// ~7 ft away: beyond digging range, within searching range.
	queryLat := "34.00002"

	rec, env := post(t, handler, searchForm(queryLat, "-118.0000"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, env.Error)

	var found treasureData
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Nil(t, found.ID, "search must not reveal the id")
	assert.Nil(t, found.Name, "search must not reveal the name")
	require.NotNil(t, found.Distance)
	assert.InDelta(t, 7.3, *found.Distance, 0.3)

	// The same spot is too far away to dig.
	_, env = post(t, handler, digForm(queryLat, "-118.0000"))
	assert.Nil(t, env.Error)
	assert.JSONEq(t, `null`, string(env.Data))

	// Searching never removes the treasure.
	_, env = post(t, handler, searchForm(queryLat, "-118.0000"))
	assert.Nil(t, env.Error)
	assert.NotEqual(t, "null", strings.TrimSpace(string(env.Data)))
}

func TestSearchFindsNothingFarAway(t *testing.T) {
	handler := newTestHandler(t)

	_, env := post(t, handler, buryForm("Ring", "34.0000", "-118.0000"))
	require.Nil(t, env.Error)

	// ~36 ft away: outside even the search radius.
	rec, env := post(t, handler, searchForm("34.0001", "-118.0000"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, env.Error)
	assert.JSONEq(t, `null`, string(env.Data))
}

func TestBuryCollision(t *testing.T) {
	handler := newTestHandler(t)

	_, env := post(t, handler, buryForm("Ring", "34.0000", "-118.0000"))
	require.Nil(t, env.Error)

	// A second bury within digging distance of the first must fail.
	rec, env := post(t, handler, buryForm("Necklace", "34.00001", "-118.0000"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, *env.Error, "already buried")
	assert.JSONEq(t, `null`, string(env.Data))

	// Only the original treasure exists: one dig succeeds, the next
	// finds nothing.
	_, env = post(t, handler, digForm("34.0000", "-118.0000"))
	require.Nil(t, env.Error)

	var dug treasureData
	require.NoError(t, json.Unmarshal(env.Data, &dug))
	require.NotNil(t, dug.Name)
	assert.Equal(t, "Ring", *dug.Name)

	_, env = post(t, handler, digForm("34.0000", "-118.0000"))
	require.Nil(t, env.Error)
	assert.JSONEq(t, `null`, string(env.Data))
}

func TestValidationErrorsOverHTTP(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name      string
		form      url.Values
		wantError string
	}{
		{
			"missing latitude",
			url.Values{"action": {"dig"}, "longitude": {"-118.0"}},
			"No latitude provided",
		},
		{
			"non-numeric latitude",
			digForm("abc", "-118.0"),
			"Value for latitude must be numeric",
		},
		{
			"missing item name",
			buryForm("", "34.0", "-118.0"),
			"No item name provided",
		},
		{
			"illegal item name",
			buryForm("@@@", "34.0", "-118.0"),
			"Item name must be at least one character long and can only contain letters, numbers, and spaces",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := post(t, handler, tt.form)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantError, *env.Error)
			assert.JSONEq(t, `null`, string(env.Data))
		})
	}
}

func TestInvalidAction(t *testing.T) {
	handler := newTestHandler(t)

	rec, env := post(t, handler, url.Values{"action": {"teleport"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Invalid action", *env.Error)
}
