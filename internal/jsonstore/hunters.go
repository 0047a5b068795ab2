package jsonstore

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// AllHunters returns the hunters in insertion order.
func (s *Store) AllHunters() []types.Hunter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil
	}
	return slices.Clone(s.doc.Hunters)
}

// HunterByID returns the hunter with the given id or types.ErrNotFound.
func (s *Store) HunterByID(id int) (types.Hunter, error) {
	return s.hunterWhere(fmt.Sprintf("hunter %d", id), hasKey[types.Hunter](id))
}

// HunterByName returns the first hunter named name.
func (s *Store) HunterByName(name string) (types.Hunter, error) {
	return s.hunterWhere(fmt.Sprintf("hunter named %q", name), func(h types.Hunter) bool { return h.Name == name })
}

// HunterByRace returns the first hunter of the given race.
func (s *Store) HunterByRace(race string) (types.Hunter, error) {
	return s.hunterWhere(fmt.Sprintf("hunter of race %q", race), func(h types.Hunter) bool { return h.Race == race })
}

// HunterByLocation returns the first hunter at location.
func (s *Store) HunterByLocation(location string) (types.Hunter, error) {
	return s.hunterWhere(fmt.Sprintf("hunter at %q", location), func(h types.Hunter) bool { return h.Location == location })
}

func (s *Store) hunterWhere(what string, pred func(types.Hunter) bool) (types.Hunter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return types.Hunter{}, types.ErrStoreDetached
	}
	if h := find(s.doc.Hunters, pred); h != nil {
		return *h, nil
	}
	return types.Hunter{}, fmt.Errorf("%s: %w", what, types.ErrNotFound)
}

// AddHunter validates h, assigns the next hunter id, appends it and
// persists the document.
func (s *Store) AddHunter(h *types.Hunter) (types.Hunter, error) {
	if h == nil {
		return types.Hunter{}, fmt.Errorf("add hunter: %w", types.ErrInvalidData)
	}
	if err := h.Validate(); err != nil {
		return types.Hunter{}, fmt.Errorf("add hunter: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.Hunter{}, types.ErrStoreDetached
	}

	h.ID = s.doc.nextID(types.HuntersCollection)
	s.doc.Hunters = append(s.doc.Hunters, *h)
	s.persistLocked("add hunter")
	return *h, nil
}

// UpdateHunter merges u into the hunter with the given id.
func (s *Store) UpdateHunter(id int, u types.HunterUpdate) (types.Hunter, error) {
	if err := u.Validate(); err != nil {
		return types.Hunter{}, fmt.Errorf("update hunter %d: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.Hunter{}, types.ErrStoreDetached
	}

	h := find(s.doc.Hunters, hasKey[types.Hunter](id))
	if h == nil {
		return types.Hunter{}, fmt.Errorf("update hunter %d: %w", id, types.ErrNotFound)
	}
	u.Apply(h)
	s.persistLocked("update hunter")
	return *h, nil
}

// DeleteHunter removes the hunter with the given id, if any.
func (s *Store) DeleteHunter(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.ErrStoreDetached
	}
	s.doc.Hunters = without(s.doc.Hunters, id)
	s.persistLocked("delete hunter")
	return nil
}
