package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routemaster/internal/models"
	apperrors "routemaster/internal/pkg/errors"
)

func testRecord(up string) models.RouteRecord {
	return models.RouteRecord{
		UpRouteName:       up,
		DownRouteName:     up + " Down",
		Src:               "Periyar",
		Dest:              "Othakadai",
		DownDepartureTime: "17:30",
		Stops: []models.Stop{
			{Sequence: 1, LocationName: "Periyar", Lat: 9.917, Lng: 78.119, IsStop: true, ArrivalTime: "08:30"},
			{Sequence: 2, LocationName: "Othakadai", Lat: 9.958, Lng: 78.173, IsStop: true, ArrivalTime: "09:00"},
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "routes.json"))
}

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	record := testRecord("Route 48")
	require.NoError(t, s.Save(ctx, &record))

	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())

	other := testRecord("Route 77")
	require.NoError(t, s.Save(ctx, &other))
	assert.NotEqual(t, record.ID, other.ID)
}

func TestRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	record := testRecord("Route 48")
	require.NoError(t, s.Save(ctx, &record))

	routes, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, routes, 1)

	got := routes[0]
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.UpRouteName, got.UpRouteName)
	assert.Equal(t, record.DownRouteName, got.DownRouteName)
	assert.Equal(t, record.Src, got.Src)
	assert.Equal(t, record.Dest, got.Dest)
	assert.Equal(t, record.DownDepartureTime, got.DownDepartureTime)
	assert.Equal(t, record.Stops, got.Stops)
	assert.True(t, record.CreatedAt.Equal(got.CreatedAt))
}

func TestListInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	names := []string{"First", "Second", "Third"}
	for _, n := range names {
		r := testRecord(n)
		require.NoError(t, s.Save(ctx, &r))
	}

	routes, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, routes, 3)
	for i, n := range names {
		assert.Equal(t, n, routes[i].UpRouteName)
	}
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)
	routes, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestDeleteOne(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testRecord("First")
	second := testRecord("Second")
	require.NoError(t, s.Save(ctx, &first))
	require.NoError(t, s.Save(ctx, &second))

	require.NoError(t, s.DeleteOne(ctx, first.ID))

	routes, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, second.ID, routes[0].ID)

	// Unknown id is a no-op, not an error.
	require.NoError(t, s.DeleteOne(ctx, "no-such-id"))
	routes, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, routes, 1)
}

func TestDeleteAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r := testRecord("Route 48")
	require.NoError(t, s.Save(ctx, &r))
	require.NoError(t, s.DeleteAll(ctx))

	routes, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, routes)

	// Deleting an already empty collection is fine.
	require.NoError(t, s.DeleteAll(ctx))
}

func TestCorruptCollectionIsStorageError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	s := New(path)

	_, err := s.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStorage))

	r := testRecord("Route 48")
	err = s.Save(context.Background(), &r)
	assert.True(t, errors.Is(err, apperrors.ErrStorage))
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	ctx := context.Background()

	first := New(path)
	r := testRecord("Route 48")
	require.NoError(t, first.Save(ctx, &r))

	reopened := New(path)
	routes, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, r.ID, routes[0].ID)
}
