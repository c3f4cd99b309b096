// Package response provides helpers for writing the JSON envelope every
// handler in this application answers with.
//
// Every response, success or failure, has the same two-key shape:
//
//	{ "error": null, "data": true }                       success
//	{ "error": null, "data": null }                       success, nothing found
//	{ "error": "No latitude provided", "data": null }     failure
//
// Both keys are always present. Exactly one of them carries meaning,
// but "data": null is itself a legitimate success ("you dug and found
// nothing"), which is why error, not data, decides the outcome.
// Consistent envelopes make life easy for API consumers: they always
// know where to look.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape of every response.
//
// Error is a *string rather than string so an absent error serializes
// as null instead of "".
type Envelope struct {
	Error *string `json:"error"`
	Data  any     `json:"data"`
}

// Success wraps a payload in a no-error envelope. data may be nil,
// which encodes as "data": null.
func Success(data any) Envelope {
	return Envelope{Data: data}
}

// Error wraps a client-safe message in an error envelope.
func Error(message string) Envelope {
	return Envelope{Error: &message}
}

// WriteJSON writes a JSON-encoded envelope with the given HTTP status
// code.
//
// Order matters: Header() before WriteHeader() before body writes.
// Once the first body byte is written the headers are locked.
func WriteJSON(w http.ResponseWriter, status int, env Envelope) error {
	// Tell the client the body is JSON, not HTML or plain text.
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(status)

	// json.NewEncoder(w) streams directly into w, avoiding an
	// intermediate buffer. Encode() appends a trailing newline, which
	// is handy when poking the API with curl.
	return json.NewEncoder(w).Encode(env)
}
