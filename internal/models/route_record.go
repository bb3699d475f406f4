package models

import (
	"time"
)

// RouteRecord is the finalized, persisted unit produced by a successful
// save: both directional labels, the ordered stops, and the return
// departure time. Once saved a record is immutable except for
// whole-record deletion.
type RouteRecord struct {
	ID                string    `json:"id"`
	UpRouteName       string    `json:"up_route_name"`
	DownRouteName     string    `json:"down_route_name"`
	Src               string    `json:"src"`
	Dest              string    `json:"dest"`
	Stops             []Stop    `json:"stops"`
	DownDepartureTime string    `json:"down_departure_time"`
	CreatedAt         time.Time `json:"created_at"`
}

// Payload converts the record into the wire shape the sync endpoint
// expects, with coordinates rendered as text.
func (r RouteRecord) Payload() RoutePayload {
	stops := make([]StopPayload, 0, len(r.Stops))
	for _, s := range r.Stops {
		stops = append(stops, StopPayload{
			StopSequence: s.Sequence,
			LocationName: s.LocationName,
			Lat:          FormatCoordinate(s.Lat),
			Lon:          FormatCoordinate(s.Lng),
			IsStop:       s.IsStop,
			ArrivalTime:  s.ArrivalTime,
		})
	}
	return RoutePayload{
		UpRouteName:       r.UpRouteName,
		DownRouteName:     r.DownRouteName,
		Src:               r.Src,
		Dest:              r.Dest,
		Stops:             stops,
		DownDepartureTime: r.DownDepartureTime,
	}
}
