// internal/presets/store.go

package presets

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/imadgeboyega/kiekky-match/internal/common/clock"
	"github.com/imadgeboyega/kiekky-match/internal/dating"
)

// Store persists saved filter sets per owner.
type Store interface {
	Save(ctx context.Context, ownerID int64, name string, filters *dating.FilterSet) (SavedFilterSet, error)
	// Apply returns a copy of the snapshot and marks the record as used.
	Apply(ctx context.Context, ownerID int64, id string) (*dating.FilterSet, error)
	Get(ctx context.Context, ownerID int64, id string) (SavedFilterSet, error)
	List(ctx context.Context, ownerID int64) ([]SavedFilterSet, error)
	// Delete is a no-op for ids the owner does not have.
	Delete(ctx context.Context, ownerID int64, id string) error
}

type records map[string]SavedFilterSet

// memoryStore serialises writers on mu and publishes each new map through
// snapshot. Published maps are never modified, so readers take no lock.
type memoryStore struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[records]
	clock    clock.Clock
}

func NewMemoryStore(clk clock.Clock) Store {
	if clk == nil {
		clk = clock.Real()
	}
	s := &memoryStore{clock: clk}
	empty := records{}
	s.snapshot.Store(&empty)
	return s
}

func (s *memoryStore) Save(ctx context.Context, ownerID int64, name string, filters *dating.FilterSet) (SavedFilterSet, error) {
	name, err := normalizeName(name)
	if err != nil {
		return SavedFilterSet{}, err
	}
	if filters == nil {
		return SavedFilterSet{}, ErrMissingFilters
	}

	now := s.clock.Now()
	rec := SavedFilterSet{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Filters:   filters.Clone(),
		CreatedAt: now,
		LastUsed:  now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.copyLocked()
	next[rec.ID] = rec
	s.snapshot.Store(&next)

	RecordOperation("save", "ok")
	return rec.clone(), nil
}

func (s *memoryStore) Apply(ctx context.Context, ownerID int64, id string) (*dating.FilterSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := (*s.snapshot.Load())[id]
	if !ok || rec.OwnerID != ownerID {
		RecordOperation("apply", "not_found")
		return nil, ErrPresetNotFound
	}

	rec.LastUsed = s.clock.Now()
	next := s.copyLocked()
	next[id] = rec
	s.snapshot.Store(&next)

	RecordOperation("apply", "ok")
	return rec.Filters.Clone(), nil
}

func (s *memoryStore) Get(ctx context.Context, ownerID int64, id string) (SavedFilterSet, error) {
	rec, ok := (*s.snapshot.Load())[id]
	if !ok || rec.OwnerID != ownerID {
		return SavedFilterSet{}, ErrPresetNotFound
	}
	return rec.clone(), nil
}

func (s *memoryStore) List(ctx context.Context, ownerID int64) ([]SavedFilterSet, error) {
	current := *s.snapshot.Load()

	list := make([]SavedFilterSet, 0)
	for _, rec := range current {
		if rec.OwnerID == ownerID {
			list = append(list, rec.clone())
		}
	}
	sortByRecent(list)
	return list, nil
}

func (s *memoryStore) Delete(ctx context.Context, ownerID int64, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := (*s.snapshot.Load())[id]
	if !ok || rec.OwnerID != ownerID {
		RecordOperation("delete", "absent")
		return nil
	}

	next := s.copyLocked()
	delete(next, id)
	s.snapshot.Store(&next)

	RecordOperation("delete", "ok")
	return nil
}

// copyLocked must be called with mu held.
func (s *memoryStore) copyLocked() records {
	current := *s.snapshot.Load()
	next := make(records, len(current)+1)
	for id, rec := range current {
		next[id] = rec
	}
	return next
}
