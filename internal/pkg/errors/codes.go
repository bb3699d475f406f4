package errors

import "net/http"

var (
	ErrValidation = New(
		"VALIDATION",
		"Missing or invalid required input",
		http.StatusBadRequest,
	)

	ErrCoordinate = New(
		"INVALID_COORDINATE",
		"Coordinates must be finite decimal degrees",
		http.StatusBadRequest,
	)

	ErrIndex = New(
		"INDEX_OUT_OF_RANGE",
		"Stop index out of range",
		http.StatusBadRequest,
	)

	ErrInsufficientStops = New(
		"INSUFFICIENT_STOPS",
		"At least 2 stops are required",
		http.StatusUnprocessableEntity,
	)

	ErrStorage = New(
		"STORAGE",
		"Local persistence failed",
		http.StatusInternalServerError,
	)

	ErrAuthentication = New(
		"AUTHENTICATION",
		"Session invalid or expired",
		http.StatusUnauthorized,
	)

	ErrServer = New(
		"SERVER",
		"Server rejected the request",
		http.StatusBadGateway,
	)

	ErrNetwork = New(
		"NETWORK",
		"Could not reach the server",
		http.StatusServiceUnavailable,
	)
)

// StatusFor maps an error onto the HTTP status the planner API reports.
func StatusFor(err error) int {
	if e, ok := err.(*AppError); ok && e.StatusCode != 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
