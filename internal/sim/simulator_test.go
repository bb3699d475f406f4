package sim

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routemaster/internal/models"
	apperrors "routemaster/internal/pkg/errors"
)

type recorder struct {
	mu        sync.Mutex
	positions []Position
}

func (r *recorder) emit(p Position) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.positions = append(r.positions, p)
}

func (r *recorder) snapshot() []Position {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Position, len(r.positions))
	copy(out, r.positions)
	return out
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.positions)
}

func fastSimulator() (*Simulator, *recorder) {
	rec := &recorder{}
	s := New(rec.emit)
	s.SetIntervals(time.Millisecond, time.Millisecond)
	return s, rec
}

func stopsAt(coords ...[2]float64) []models.Stop {
	stops := make([]models.Stop, len(coords))
	for i, c := range coords {
		stops[i] = models.Stop{
			Sequence:     i + 1,
			LocationName: "stop",
			Lat:          c[0],
			Lng:          c[1],
			IsStop:       true,
			ArrivalTime:  "08:30",
		}
	}
	return stops
}

func waitForState(t *testing.T, s *Simulator, want State) {
	t.Helper()
	require.Eventually(t, func() bool { return s.State() == want },
		2*time.Second, time.Millisecond, "simulator never reached %v", want)
}

func TestStartRequiresTwoStops(t *testing.T) {
	s, rec := fastSimulator()

	err := s.Start(nil)
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientStops))

	err = s.Start(stopsAt([2]float64{0, 0}))
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientStops))

	assert.Equal(t, StateIdle, s.State())
	assert.Zero(t, rec.count())
}

func TestStartEmitsFirstStopSynchronously(t *testing.T) {
	s, rec := fastSimulator()
	// Long cadence: only the synchronous initial emission can have
	// happened by the time Start returns.
	s.SetIntervals(time.Hour, time.Hour)

	require.NoError(t, s.Start(stopsAt([2]float64{9.917, 78.119}, [2]float64{10, 79})))
	defer s.Cancel()

	positions := rec.snapshot()
	require.Len(t, positions, 1)
	assert.Equal(t, Position{Lat: 9.917, Lng: 78.119}, positions[0])

	pos, ok := s.Position()
	require.True(t, ok)
	assert.Equal(t, positions[0], pos)
	assert.Equal(t, StateRunning, s.State())
}

func TestSingleLegInterpolation(t *testing.T) {
	s, rec := fastSimulator()

	require.NoError(t, s.Start(stopsAt([2]float64{0, 0}, [2]float64{1, 1})))
	waitForState(t, s, StateCompleted)

	positions := rec.snapshot()
	// Initial position plus exactly 20 interpolation steps.
	require.Len(t, positions, 1+StepsPerLeg)
	assert.Equal(t, Position{Lat: 0, Lng: 0}, positions[0])
	for k := 1; k <= StepsPerLeg; k++ {
		want := float64(k) / float64(StepsPerLeg)
		assert.InDelta(t, want, positions[k].Lat, 1e-12, "step %d lat", k)
		assert.InDelta(t, want, positions[k].Lng, 1e-12, "step %d lng", k)
	}

	// Position stays at the final stop after completion.
	pos, ok := s.Position()
	require.True(t, ok)
	assert.Equal(t, Position{Lat: 1, Lng: 1}, pos)
}

func TestMultiLegOrdering(t *testing.T) {
	s, rec := fastSimulator()

	require.NoError(t, s.Start(stopsAt([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1})))
	waitForState(t, s, StateCompleted)

	positions := rec.snapshot()
	require.Len(t, positions, 1+2*StepsPerLeg)

	// Leg 1 finishes at (1,0) before leg 2 begins.
	assert.Equal(t, Position{Lat: 1, Lng: 0}, positions[StepsPerLeg])
	// Leg 2 interpolates longitude only.
	for k := 1; k <= StepsPerLeg; k++ {
		assert.InDelta(t, 1.0, positions[StepsPerLeg+k].Lat, 1e-12)
		assert.InDelta(t, float64(k)/float64(StepsPerLeg), positions[StepsPerLeg+k].Lng, 1e-12)
	}
}

func TestCancelIdempotent(t *testing.T) {
	s, rec := fastSimulator()

	// Cancelling an idle simulator is a no-op.
	s.Cancel()
	assert.Equal(t, StateIdle, s.State())

	require.NoError(t, s.Start(stopsAt([2]float64{0, 0}, [2]float64{1, 1})))
	s.Cancel()
	s.Cancel()
	assert.Equal(t, StateCancelled, s.State())

	// No emissions arrive after cancellation settles.
	time.Sleep(20 * time.Millisecond)
	n := rec.count()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, rec.count())
}

func TestRestartSupersedesActiveRun(t *testing.T) {
	s, rec := fastSimulator()
	s.SetIntervals(50*time.Millisecond, 50*time.Millisecond)

	require.NoError(t, s.Start(stopsAt([2]float64{0, 0}, [2]float64{1, 1})))

	// New stop list: no interpolation state survives the restart.
	s.SetIntervals(time.Millisecond, time.Millisecond)
	require.NoError(t, s.Start(stopsAt([2]float64{5, 5}, [2]float64{6, 6})))
	waitForState(t, s, StateCompleted)

	positions := rec.snapshot()
	last := positions[len(positions)-1]
	assert.Equal(t, Position{Lat: 6, Lng: 6}, last)

	// Every position after the restart belongs to the new run.
	var afterRestart []Position
	for _, p := range positions {
		if p.Lat >= 5 {
			afterRestart = append(afterRestart, p)
		}
	}
	require.Len(t, afterRestart, 1+StepsPerLeg)
}

func TestCompletedSimulatorRestarts(t *testing.T) {
	s, _ := fastSimulator()

	require.NoError(t, s.Start(stopsAt([2]float64{0, 0}, [2]float64{1, 1})))
	waitForState(t, s, StateCompleted)

	require.NoError(t, s.Start(stopsAt([2]float64{2, 2}, [2]float64{3, 3})))
	waitForState(t, s, StateCompleted)

	pos, ok := s.Position()
	require.True(t, ok)
	assert.Equal(t, Position{Lat: 3, Lng: 3}, pos)
}
