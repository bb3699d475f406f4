package models

import (
	"strings"

	apperrors "routemaster/internal/pkg/errors"
)

// StopPayload is the wire shape of a single stop. Coordinates travel as
// text and must parse to finite decimal degrees.
type StopPayload struct {
	StopSequence int    `json:"stop_sequence"`
	LocationName string `json:"location_name"`
	Lat          string `json:"lat"`
	Lon          string `json:"lon"`
	IsStop       bool   `json:"is_stop"`
	ArrivalTime  string `json:"arrival_time"`
}

// RoutePayload is the JSON body posted to the save-new-route endpoint.
type RoutePayload struct {
	UpRouteName       string        `json:"up_route_name"`
	DownRouteName     string        `json:"down_route_name"`
	Src               string        `json:"src"`
	Dest              string        `json:"dest"`
	Stops             []StopPayload `json:"stops"`
	DownDepartureTime string        `json:"down_departure_time"`
}

// Validate applies the route contract on the receiving side: both
// direction names, at least two stops, finite coordinates, an arrival
// time per stop, and the down departure time.
func (p RoutePayload) Validate() error {
	if strings.TrimSpace(p.UpRouteName) == "" || strings.TrimSpace(p.DownRouteName) == "" {
		return apperrors.Validation("both route names are required")
	}
	if len(p.Stops) < 2 {
		return apperrors.ErrInsufficientStops
	}
	if strings.TrimSpace(p.DownDepartureTime) == "" {
		return apperrors.Validation("down departure time is required")
	}
	for i, s := range p.Stops {
		if strings.TrimSpace(s.LocationName) == "" {
			return apperrors.Validation("stop %d has no location name", i+1)
		}
		if strings.TrimSpace(s.ArrivalTime) == "" {
			return apperrors.Validation("stop %d has no arrival time", i+1)
		}
		if _, err := ParseCoordinate(s.Lat); err != nil {
			return err
		}
		if _, err := ParseCoordinate(s.Lon); err != nil {
			return err
		}
	}
	return nil
}

// Record parses the payload back into domain form. Sequences are
// renumbered densely from 1 regardless of what the sender supplied.
func (p RoutePayload) Record() (RouteRecord, error) {
	if err := p.Validate(); err != nil {
		return RouteRecord{}, err
	}
	stops := make([]Stop, 0, len(p.Stops))
	for i, s := range p.Stops {
		lat, err := ParseCoordinate(s.Lat)
		if err != nil {
			return RouteRecord{}, err
		}
		lng, err := ParseCoordinate(s.Lon)
		if err != nil {
			return RouteRecord{}, err
		}
		stops = append(stops, Stop{
			Sequence:     i + 1,
			LocationName: strings.TrimSpace(s.LocationName),
			Lat:          lat,
			Lng:          lng,
			IsStop:       s.IsStop,
			ArrivalTime:  strings.TrimSpace(s.ArrivalTime),
		})
	}
	return RouteRecord{
		UpRouteName:       strings.TrimSpace(p.UpRouteName),
		DownRouteName:     strings.TrimSpace(p.DownRouteName),
		Src:               p.Src,
		Dest:              p.Dest,
		Stops:             stops,
		DownDepartureTime: strings.TrimSpace(p.DownDepartureTime),
	}, nil
}
