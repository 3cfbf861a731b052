package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu   sync.RWMutex
	runs map[string]store.Run
	now  func() time.Time
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs: make(map[string]store.Run),
		now:  time.Now,
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// RecordRun stores a copy of r.
func (s *Store) RecordRun(ctx context.Context, r store.Run) (store.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r = store.Prepare(r, s.now())
	if _, exists := s.runs[r.ID]; exists {
		return store.Run{}, errors.Wrapf(internalerr.ErrInvalidInput, "memstore: run %s already recorded", r.ID)
	}
	s.runs[r.ID] = store.Clone(r)
	return store.Clone(r), nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.runs[id]; ok {
		return store.Clone(r), nil
	}
	return store.Run{}, errors.Wrapf(internalerr.ErrNotFound, "memstore: run %s", id)
}

// ListRuns returns runs newest first, optionally filtered by kind.
func (s *Store) ListRuns(ctx context.Context, opts store.ListOptions) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Run
	for _, r := range s.runs {
		if opts.Kind != "" && r.Kind != opts.Kind {
			continue
		}
		out = append(out, store.Clone(r))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	if limit := opts.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
