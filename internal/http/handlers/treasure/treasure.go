// Package treasure contains the HTTP boundary of the treasure hunt API.
//
// A single endpoint carries all three operations, preserving the wire
// contract the original geolocation client speaks:
//
//	POST /api/treasure
//	  action    = "bury" | "dig" | "search"
//	  item-name = name of the item to bury (bury only)
//	  latitude  = e.g. "34.0522"
//	  longitude = e.g. "-118.2437"
//
// Inputs arrive as form values; every input reaches the service as a
// raw string and is validated there, never here.
//
// HANDLER PATTERN - THE CLOSURE / FACTORY PATTERN:
// Action(svc) runs once at route registration, captures the service in
// a closure, and returns the func the router then calls on every
// request. This is how dependencies get injected into handlers whose
// signature has no room for extra parameters.
package treasure

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/treasure-hunt-api/internal/service"
	"github.com/aanand-mishra/treasure-hunt-api/internal/types"
	"github.com/aanand-mishra/treasure-hunt-api/internal/utils/response"
	"github.com/aanand-mishra/treasure-hunt-api/internal/validation"
)

// unknownErrorMessage is all a client ever sees of an unexpected fault.
// Internals (store errors, wrapped causes) go to the log, never over
// the wire.
const unknownErrorMessage = "An unknown error has occurred"

// Action handles POST /api/treasure, dispatching on the "action" form
// value.
//
// Responses (every one uses the {error, data} envelope):
//
//	bury   success -> 200 {"error": null, "data": true}
//	dig    success -> 200 {"error": null, "data": <treasure or null>}
//	search success -> 200 {"error": null, "data": <treasure or null>}
//
//	validation failure -> 400, bury collision -> 409,
//	unknown action -> 400, unexpected fault -> 500
func Action(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action := r.FormValue("action")
		slog.Info("handling treasure request", slog.String("action", action))

		switch action {
		case "bury":
			bury(svc, w, r)
		case "dig":
			dig(svc, w, r)
		case "search":
			search(svc, w, r)
		default:
			response.WriteJSON(w, http.StatusBadRequest,
				response.Error("Invalid action"))
		}
	}
}

// bury creates a new treasure at the caller's coordinates.
// On success the data payload is the bare boolean true.
func bury(svc *service.Service, w http.ResponseWriter, r *http.Request) {
	err := svc.Bury(types.BuryRequest{
		ItemName:  r.FormValue("item-name"),
		Latitude:  r.FormValue("latitude"),
		Longitude: r.FormValue("longitude"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("treasure buried")
	response.WriteJSON(w, http.StatusOK, response.Success(true))
}

// dig removes and returns the treasure at the caller's coordinates,
// if there is one within digging distance.
func dig(svc *service.Service, w http.ResponseWriter, r *http.Request) {
	treasure, err := svc.Dig(types.LocateRequest{
		Latitude:  r.FormValue("latitude"),
		Longitude: r.FormValue("longitude"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if treasure == nil {
		// Nothing buried here. Still a success: data is null.
		response.WriteJSON(w, http.StatusOK, response.Success(nil))
		return
	}

	slog.Info("treasure dug up")
	response.WriteJSON(w, http.StatusOK, response.Success(treasure))
}

// search reports whether anything is buried near the caller's
// coordinates, revealing only its distance.
func search(svc *service.Service, w http.ResponseWriter, r *http.Request) {
	treasure, err := svc.Search(types.LocateRequest{
		Latitude:  r.FormValue("latitude"),
		Longitude: r.FormValue("longitude"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if treasure == nil {
		response.WriteJSON(w, http.StatusOK, response.Success(nil))
		return
	}

	response.WriteJSON(w, http.StatusOK, response.Success(treasure))
}

// writeError maps a service error onto an HTTP status and envelope.
//
// Validation failures and the bury collision were produced by the
// service on purpose, with client-safe messages, so they are surfaced
// verbatim. Everything else is unexpected: log the detail, answer with
// the generic message.
func writeError(w http.ResponseWriter, err error) {
	var fieldErr *validation.FieldError
	if errors.As(err, &fieldErr) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.Error(fieldErr.Message))
		return
	}

	if errors.Is(err, service.ErrAlreadyBuried) {
		response.WriteJSON(w, http.StatusConflict,
			response.Error(err.Error()))
		return
	}

	slog.Error("unexpected error handling treasure request",
		slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError,
		response.Error(unknownErrorMessage))
}
