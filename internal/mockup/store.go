package mockup

import (
	"fmt"
	"sync"
)

// Store is the ordered collection of generated assets, newest first. The
// store owns its records: batches are copied in and accessors copy out, so
// no caller ever shares a mutable struct with the store and reads need no
// coordination with concurrent Update calls. The single-threaded-UI
// assumption of the original design does not hold on a multi-threaded
// runtime.
//
// Shallow copies suffice: mutations replace whole slice fields, never write
// through their elements.
type Store struct {
	mu     sync.RWMutex
	assets []*GeneratedAsset
}

// NewStore returns an empty asset store.
func NewStore() *Store {
	return &Store{}
}

func copyOf(a *GeneratedAsset) *GeneratedAsset {
	c := *a
	return &c
}

// PrependBatch inserts one run's results as a contiguous newest-first block
// at the front of the collection, in the order the jobs were issued.
func (s *Store) PrependBatch(batch []*GeneratedAsset) {
	if len(batch) == 0 {
		return
	}
	owned := make([]*GeneratedAsset, len(batch))
	for i, a := range batch {
		owned[i] = copyOf(a)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = append(owned, s.assets...)
}

// List returns a snapshot of the collection in display order.
func (s *Store) List() []*GeneratedAsset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*GeneratedAsset, len(s.assets))
	for i, a := range s.assets {
		out[i] = copyOf(a)
	}
	return out
}

// Len reports the number of stored assets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets)
}

// Get returns the asset with the given id.
func (s *Store) Get(id string) (*GeneratedAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.assets {
		if a.ID == id {
			return copyOf(a), nil
		}
	}
	return nil, fmt.Errorf("asset %s not found", id)
}

// Update applies fn to the asset with the given id under the write lock.
func (s *Store) Update(id string, fn func(*GeneratedAsset)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.assets {
		if a.ID == id {
			fn(a)
			return nil
		}
	}
	return fmt.Errorf("asset %s not found", id)
}

// ToggleFavorite flips the advisory primary-asset flag. No uniqueness is
// enforced; several assets may be favorited.
func (s *Store) ToggleFavorite(id string) error {
	return s.Update(id, func(a *GeneratedAsset) {
		a.IsFavorite = !a.IsFavorite
	})
}

// Reorder replaces the display order with the given id sequence. Every
// stored asset must appear exactly once.
func (s *Store) Reorder(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(ids) != len(s.assets) {
		return fmt.Errorf("reorder expects %d ids, got %d", len(s.assets), len(ids))
	}
	byID := make(map[string]*GeneratedAsset, len(s.assets))
	for _, a := range s.assets {
		byID[a.ID] = a
	}
	next := make([]*GeneratedAsset, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return fmt.Errorf("unknown asset %s in reorder", id)
		}
		delete(byID, id)
		next = append(next, a)
	}
	s.assets = next
	return nil
}
