package models

import (
	"math"
	"strconv"

	apperrors "routemaster/internal/pkg/errors"
)

// Stop is a single point along a route being built.
// Sequence is 1-based and kept dense: after any deletion the remaining
// stops are renumbered to match their list position.
type Stop struct {
	Sequence     int     `json:"stop_sequence"`
	LocationName string  `json:"location_name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lon"`
	IsStop       bool    `json:"is_stop"`
	ArrivalTime  string  `json:"arrival_time"`
}

// ValidateCoordinate rejects NaN and infinite components. Both map-tap
// and locate-me coordinates pass through here.
func ValidateCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return apperrors.Coordinate("coordinate (%v, %v) is not finite", lat, lng)
	}
	return nil
}

// ParseCoordinate parses a textual latitude or longitude as stored on
// the wire and rejects non-finite values.
func ParseCoordinate(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.Coordinate("coordinate %q does not parse: %v", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.Coordinate("coordinate %q is not finite", raw)
	}
	return v, nil
}

// FormatCoordinate renders a coordinate the way the wire format carries
// it (decimal degrees as text).
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
