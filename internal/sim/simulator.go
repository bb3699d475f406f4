package sim

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"routemaster/internal/models"
	apperrors "routemaster/internal/pkg/errors"
)

// State is the simulator lifecycle state. Completed and Cancelled are
// terminal but behave like Idle: a new Start is always accepted.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// Position is one emitted point of the simulated bus.
type Position struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

const (
	// StepsPerLeg is the fixed number of interpolation steps between
	// two consecutive stops. Fixed step count and cadence give smooth
	// motion without any real-world speed calculation.
	StepsPerLeg = 20

	DefaultStepInterval = 300 * time.Millisecond
	DefaultDwell        = time.Second
)

// Simulator drives a bus along the polyline connecting a stop list:
// per leg, exactly StepsPerLeg linearly interpolated positions at a
// fixed cadence, then a dwell pause at the stop before the next leg.
// At most one run is active; starting again or cancelling tears the
// active run down through its cancel channel so no timer outlives it.
type Simulator struct {
	mu           sync.Mutex
	state        State
	pos          Position
	hasPos       bool
	cancel       chan struct{}
	emit         func(Position)
	stepInterval time.Duration
	dwell        time.Duration
}

// New builds a simulator that reports every position through emit.
// The callback runs with the simulator lock held and must not call
// back into the simulator.
func New(emit func(Position)) *Simulator {
	if emit == nil {
		emit = func(Position) {}
	}
	return &Simulator{
		emit:         emit,
		stepInterval: DefaultStepInterval,
		dwell:        DefaultDwell,
	}
}

// SetIntervals overrides the step cadence and dwell pause. Used by
// tests; has no effect on an already running simulation.
func (s *Simulator) SetIntervals(step, dwell time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stepInterval = step
	s.dwell = dwell
}

// Start begins simulating the given stop list. A running simulation is
// cancelled first. The first position (stop 1) is set and emitted
// synchronously before Start returns.
func (s *Simulator) Start(stops []models.Stop) error {
	if len(stops) < 2 {
		return apperrors.ErrInsufficientStops
	}
	coords := make([]Position, len(stops))
	for i, st := range stops {
		coords[i] = Position{Lat: st.Lat, Lng: st.Lng}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()

	cancel := make(chan struct{})
	s.cancel = cancel
	s.state = StateRunning
	s.pos = coords[0]
	s.hasPos = true
	s.emit(coords[0])

	go s.run(coords, cancel, s.stepInterval, s.dwell)

	logrus.WithField("stops", len(stops)).Debug("Route simulation started")
	return nil
}

// Cancel halts the active run. Cancelling an idle, completed, or
// already cancelled simulator is a no-op.
func (s *Simulator) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *Simulator) cancelLocked() {
	if s.state != StateRunning {
		return
	}
	close(s.cancel)
	s.state = StateCancelled
	logrus.Debug("Route simulation cancelled")
}

// State returns the current lifecycle state.
func (s *Simulator) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Position returns the last emitted position, if any run has produced one.
func (s *Simulator) Position() (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos, s.hasPos
}

func (s *Simulator) run(coords []Position, cancel chan struct{}, stepInterval, dwell time.Duration) {
	for leg := 0; leg < len(coords)-1; leg++ {
		start, end := coords[leg], coords[leg+1]

		ticker := time.NewTicker(stepInterval)
		for step := 1; step <= StepsPerLeg; step++ {
			select {
			case <-cancel:
				ticker.Stop()
				return
			case <-ticker.C:
			}
			frac := float64(step) / float64(StepsPerLeg)
			p := Position{
				Lat: start.Lat + (end.Lat-start.Lat)*frac,
				Lng: start.Lng + (end.Lng-start.Lng)*frac,
			}
			if !s.advance(p, cancel) {
				ticker.Stop()
				return
			}
		}
		ticker.Stop()

		// Dwell at the stop before heading out on the next leg.
		if leg < len(coords)-2 {
			timer := time.NewTimer(dwell)
			select {
			case <-cancel:
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}
	s.complete(cancel)
}

// advance records and emits a position unless the run was cancelled in
// the meantime. Returns false when the run should stop.
func (s *Simulator) advance(p Position, cancel chan struct{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-cancel:
		return false
	default:
	}
	s.pos = p
	s.emit(p)
	return true
}

func (s *Simulator) complete(cancel chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == cancel && s.state == StateRunning {
		s.state = StateCompleted
		logrus.Debug("Route simulation completed")
	}
}
