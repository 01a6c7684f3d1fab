package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// getUserIDFromContext extracts the authenticated user's ID from the request
// context. The user ID is placed in the context by the authentication
// middleware; a missing or non-positive ID means the middleware did not run.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	userID, ok := shared.UserID(r.Context())
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

// getPathID extracts a numeric task ID from the URL path parameters.
// Returns domain.ErrInvalidID (wrapped) when the parameter is missing or
// does not parse as a positive integer.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// parseCompletedFilter interprets the completed query parameter.
// Only the literal values "true" and "false" (case-insensitive) activate
// the filter; anything else, including an absent parameter, is ignored.
func parseCompletedFilter(value string) *bool {
	switch strings.ToLower(value) {
	case "true":
		completed := true
		return &completed
	case "false":
		completed := false
		return &completed
	default:
		return nil
	}
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or not a valid integer.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

// isCompletedTypeError reports whether a JSON decode failure was caused by
// a non-boolean completed field, which gets its own client-facing message.
func isCompletedTypeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr) && typeErr.Field == "completed"
}
