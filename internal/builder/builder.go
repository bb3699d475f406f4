package builder

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"routemaster/internal/models"
	apperrors "routemaster/internal/pkg/errors"
)

// RecordStore persists finalized route records locally.
type RecordStore interface {
	Save(ctx context.Context, record *models.RouteRecord) error
}

// Syncer pushes a finalized record to the remote server.
type Syncer interface {
	Send(ctx context.Context, record models.RouteRecord) error
}

// Canceller is the hook into the running simulation: clearing or
// deleting all stops invalidates the stop list a simulation reads, so
// the builder must tear it down.
type Canceller interface {
	Cancel()
}

// Details are the pending route-level entry fields collected alongside
// the stop list.
type Details struct {
	UpRouteName       string `json:"up_route_name"`
	DownRouteName     string `json:"down_route_name"`
	DownDepartureTime string `json:"down_departure_time"`
}

// SaveResult reports a completed save. Synced is false with SyncErr set
// when the record was stored locally but could not be pushed to the
// server; that is a warning, not a save failure.
type SaveResult struct {
	Record  models.RouteRecord
	Synced  bool
	SyncErr error
}

// Builder accumulates an ordered stop list plus route details and
// turns them into a RouteRecord on save. All mutation goes through its
// methods; stop sequences stay dense 1..N after every operation.
type Builder struct {
	mu      sync.Mutex
	stops   []models.Stop
	details Details

	store RecordStore
	sync  Syncer
	sim   Canceller
}

func New(store RecordStore, syncer Syncer, sim Canceller) *Builder {
	return &Builder{store: store, sync: syncer, sim: sim}
}

// AddStop validates and appends a stop. Map taps and locate-me both
// land here; the only difference upstream is which fields came
// pre-filled.
func (b *Builder) AddStop(lat, lng float64, name, arrivalTime string) (models.Stop, error) {
	name = strings.TrimSpace(name)
	arrivalTime = strings.TrimSpace(arrivalTime)
	if name == "" {
		return models.Stop{}, apperrors.Validation("please enter a stop name first")
	}
	if arrivalTime == "" {
		return models.Stop{}, apperrors.Validation("please enter an arrival time for this stop")
	}
	if err := models.ValidateCoordinate(lat, lng); err != nil {
		return models.Stop{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	stop := models.Stop{
		Sequence:     len(b.stops) + 1,
		LocationName: name,
		Lat:          lat,
		Lng:          lng,
		IsStop:       true,
		ArrivalTime:  arrivalTime,
	}
	b.stops = append(b.stops, stop)
	return stop, nil
}

// DeleteStop removes the stop at index and renumbers the rest so
// sequences stay dense from 1.
func (b *Builder) DeleteStop(index int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.stops) {
		return apperrors.Index("no stop at index %d", index)
	}
	b.stops = append(b.stops[:index], b.stops[index+1:]...)
	for i := range b.stops {
		b.stops[i].Sequence = i + 1
	}
	return nil
}

// DeleteAllStops clears the stop list unconditionally and cancels any
// running simulation, whose stop references are now invalid.
func (b *Builder) DeleteAllStops() {
	b.mu.Lock()
	b.stops = nil
	b.mu.Unlock()
	b.cancelSim()
}

// ToggleStopKind flips a stop between boarding point and pass-through.
// Display-only; ordering and validation are unaffected.
func (b *Builder) ToggleStopKind(index int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.stops) {
		return apperrors.Index("no stop at index %d", index)
	}
	b.stops[index].IsStop = !b.stops[index].IsStop
	return nil
}

// SetDetails updates the pending route-level fields.
func (b *Builder) SetDetails(d Details) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.details = Details{
		UpRouteName:       strings.TrimSpace(d.UpRouteName),
		DownRouteName:     strings.TrimSpace(d.DownRouteName),
		DownDepartureTime: strings.TrimSpace(d.DownDepartureTime),
	}
}

// Stops returns a copy of the current stop list.
func (b *Builder) Stops() []models.Stop {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Stop, len(b.stops))
	copy(out, b.stops)
	return out
}

// Details returns the pending route-level fields.
func (b *Builder) Details() Details {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.details
}

// Save validates the in-progress route, persists it locally, and then
// offers it to the server. The local write always comes first and the
// sync outcome never rolls it back: a failed sync is reported through
// SaveResult as a warning. Any failure before the local write leaves
// the builder state intact so the user can correct and retry; on local
// success all state is reset.
func (b *Builder) Save(ctx context.Context) (SaveResult, error) {
	b.mu.Lock()
	record, err := b.buildRecordLocked()
	if err != nil {
		b.mu.Unlock()
		return SaveResult{}, err
	}
	b.mu.Unlock()

	if err := b.store.Save(ctx, &record); err != nil {
		logrus.WithError(err).Error("Could not save route locally")
		return SaveResult{}, err
	}

	b.mu.Lock()
	b.stops = nil
	b.details = Details{}
	b.mu.Unlock()
	b.cancelSim()

	result := SaveResult{Record: record, Synced: true}
	if err := b.sync.Send(ctx, record); err != nil {
		result.Synced = false
		result.SyncErr = err
		logrus.WithError(err).WithField("route_id", record.ID).
			Warn("Route saved locally but not synced")
	}
	return result, nil
}

// Clear resets all builder state without producing a record and
// cancels any running simulation.
func (b *Builder) Clear() {
	b.mu.Lock()
	b.stops = nil
	b.details = Details{}
	b.mu.Unlock()
	b.cancelSim()
}

func (b *Builder) buildRecordLocked() (models.RouteRecord, error) {
	if len(b.stops) < 2 {
		return models.RouteRecord{}, apperrors.ErrInsufficientStops
	}
	if b.details.UpRouteName == "" || b.details.DownRouteName == "" {
		return models.RouteRecord{}, apperrors.Validation("please enter both route names")
	}
	for _, s := range b.stops {
		if s.ArrivalTime == "" {
			return models.RouteRecord{}, apperrors.Validation("all stops must have an arrival time")
		}
	}
	if b.details.DownDepartureTime == "" {
		return models.RouteRecord{}, apperrors.Validation("please enter the down departure time")
	}

	stops := make([]models.Stop, len(b.stops))
	copy(stops, b.stops)
	return models.RouteRecord{
		UpRouteName:       b.details.UpRouteName,
		DownRouteName:     b.details.DownRouteName,
		Src:               stops[0].LocationName,
		Dest:              stops[len(stops)-1].LocationName,
		Stops:             stops,
		DownDepartureTime: b.details.DownDepartureTime,
	}, nil
}

func (b *Builder) cancelSim() {
	if b.sim != nil {
		b.sim.Cancel()
	}
}
