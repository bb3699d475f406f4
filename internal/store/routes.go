package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"routemaster/internal/models"
	apperrors "routemaster/internal/pkg/errors"
)

// Store is the local persistence layer for completed routes: a single
// JSON array under one file, read-modify-written as a whole on every
// mutation. Expected scale is tens to low hundreds of routes, so the
// full rewrite keeps the on-disk shape identical to the wire shape
// without any indexing machinery.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Save assigns an id and creation timestamp when the record has none,
// appends it to the collection, and rewrites the collection. The
// record is updated in place so the caller sees the generated fields.
func (s *Store) Save(ctx context.Context, record *models.RouteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	routes, err := s.readAll()
	if err != nil {
		return err
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	routes = append(routes, *record)
	return s.writeAll(routes)
}

// List returns all stored records in insertion order.
func (s *Store) List(ctx context.Context) ([]models.RouteRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

// DeleteOne removes the record with the given id. An unknown id is a
// no-op, not an error.
func (s *Store) DeleteOne(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	routes, err := s.readAll()
	if err != nil {
		return err
	}
	kept := routes[:0]
	for _, r := range routes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return s.writeAll(kept)
}

// DeleteAll empties the collection.
func (s *Store) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return apperrors.Storage("could not remove route collection", err)
	}
	return nil
}

func (s *Store) readAll() ([]models.RouteRecord, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.RouteRecord{}, nil
		}
		return nil, apperrors.Storage("could not read route collection", err)
	}
	var routes []models.RouteRecord
	if err := json.Unmarshal(raw, &routes); err != nil {
		return nil, apperrors.Storage("route collection is corrupt", err)
	}
	return routes, nil
}

func (s *Store) writeAll(routes []models.RouteRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperrors.Storage("could not create data directory", err)
	}
	raw, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return apperrors.Storage("could not encode route collection", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return apperrors.Storage("could not write route collection", err)
	}
	return nil
}
