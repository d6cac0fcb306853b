// Package memory is the in-process lead store. Leads live in a map keyed by ID
// and in a btree ordered by (created_at desc, id desc); List hands out a
// copy-on-write clone of the tree, so snapshots are cheap and already ordered.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/btree"
	"github.com/rs/zerolog"

	"github.com/maxviazov/lead-service/internal/model"
	"github.com/maxviazov/lead-service/internal/pagination"
	"github.com/maxviazov/lead-service/internal/repository"
)

const btreeDegree = 32

var errMissingID = errors.New("memory: lead id is required")

type Store struct {
	mu    sync.RWMutex
	byID  map[string]model.Lead
	index *btree.BTreeG[model.Lead]
	now   func() time.Time
	log   zerolog.Logger
}

func New(logger zerolog.Logger) *Store {
	return &Store{
		byID: make(map[string]model.Lead),
		index: btree.NewG(btreeDegree, func(a, b model.Lead) bool {
			return pagination.Less(pagination.KeyOf(a), pagination.KeyOf(b))
		}),
		now: time.Now,
		log: logger.With().Str("module", "repository").Str("component", "memory").Logger(),
	}
}

// WithClock overrides the clock used to stamp UpdatedAt.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Create(_ context.Context, l model.Lead) (model.Lead, error) {
	if l.ID == "" {
		return model.Lead{}, errMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[l.ID]; ok {
		return model.Lead{}, repository.ErrAlreadyExists
	}
	s.put(l.Clone())
	return l.Clone(), nil
}

// BulkCreate checks every ID before inserting anything.
func (s *Store) BulkCreate(_ context.Context, leads []model.Lead) ([]model.Lead, error) {
	seen := make(map[string]struct{}, len(leads))
	for _, l := range leads {
		if l.ID == "" {
			return nil, errMissingID
		}
		if _, dup := seen[l.ID]; dup {
			return nil, repository.ErrAlreadyExists
		}
		seen[l.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range leads {
		if _, ok := s.byID[l.ID]; ok {
			return nil, repository.ErrAlreadyExists
		}
	}
	out := make([]model.Lead, 0, len(leads))
	for _, l := range leads {
		s.put(l.Clone())
		out = append(out, l.Clone())
	}
	s.log.Debug().Int("count", len(out)).Msg("bulk insert")
	return out, nil
}

func (s *Store) GetByID(_ context.Context, id string) (model.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.byID[id]
	if !ok {
		return model.Lead{}, repository.ErrNotFound
	}
	return l.Clone(), nil
}

func (s *Store) Update(_ context.Context, l model.Lead) (model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.byID[l.ID]
	if !ok {
		return model.Lead{}, repository.ErrNotFound
	}
	updated := l.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.now().UTC()
	// same ordering key, so this replaces the indexed item in place
	s.put(updated)
	return updated.Clone(), nil
}

func (s *Store) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.byID[id]
	if !ok {
		return false, nil
	}
	delete(s.byID, id)
	s.index.Delete(existing)
	return true, nil
}

// List clones the index under the lock and copies it out afterwards;
// writers proceed against the original while the clone is read.
func (s *Store) List(_ context.Context) ([]model.Lead, error) {
	s.mu.Lock()
	snap := s.index.Clone()
	s.mu.Unlock()

	out := make([]model.Lead, 0, snap.Len())
	snap.Ascend(func(l model.Lead) bool {
		out = append(out, l.Clone())
		return true
	})
	return out, nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// put must be called with mu held for writing.
func (s *Store) put(l model.Lead) {
	s.byID[l.ID] = l
	s.index.ReplaceOrInsert(l)
}

var _ repository.Store = (*Store)(nil)
