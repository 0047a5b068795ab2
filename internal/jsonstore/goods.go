package jsonstore

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// AllGoods returns the goods in insertion order.
func (s *Store) AllGoods() []types.Good {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil
	}
	return slices.Clone(s.doc.Goods)
}

// GoodByID returns the good with the given id or types.ErrNotFound.
func (s *Store) GoodByID(id int) (types.Good, error) {
	return s.goodWhere(fmt.Sprintf("good %d", id), hasKey[types.Good](id))
}

// GoodByName returns the first good whose name equals name exactly.
func (s *Store) GoodByName(name string) (types.Good, error) {
	return s.goodWhere(fmt.Sprintf("good named %q", name), func(g types.Good) bool { return g.Name == name })
}

// GoodByDescription returns the first good whose description equals
// description exactly.
func (s *Store) GoodByDescription(description string) (types.Good, error) {
	return s.goodWhere(fmt.Sprintf("good described %q", description), func(g types.Good) bool { return g.Description == description })
}

func (s *Store) goodWhere(what string, pred func(types.Good) bool) (types.Good, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return types.Good{}, types.ErrStoreDetached
	}
	if g := find(s.doc.Goods, pred); g != nil {
		return *g, nil
	}
	return types.Good{}, fmt.Errorf("%s: %w", what, types.ErrNotFound)
}

// AddGood validates g, assigns it the next good id (also written back to
// g), appends it and persists the document.
func (s *Store) AddGood(g *types.Good) (types.Good, error) {
	if g == nil {
		return types.Good{}, fmt.Errorf("add good: %w", types.ErrInvalidData)
	}
	if err := g.Validate(); err != nil {
		return types.Good{}, fmt.Errorf("add good: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.Good{}, types.ErrStoreDetached
	}

	g.ID = s.doc.nextID(types.GoodsCollection)
	s.doc.Goods = append(s.doc.Goods, *g)
	s.persistLocked("add good")
	return *g, nil
}

// UpdateGood merges the non-nil fields of u into the good with the given
// id and persists the document. A missing id returns types.ErrNotFound and
// changes nothing.
func (s *Store) UpdateGood(id int, u types.GoodUpdate) (types.Good, error) {
	if err := u.Validate(); err != nil {
		return types.Good{}, fmt.Errorf("update good %d: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.Good{}, types.ErrStoreDetached
	}

	g := find(s.doc.Goods, hasKey[types.Good](id))
	if g == nil {
		return types.Good{}, fmt.Errorf("update good %d: %w", id, types.ErrNotFound)
	}
	u.Apply(g)
	s.persistLocked("update good")
	return *g, nil
}

// DeleteGood removes the good with the given id. A missing id is not an
// error; the document is persisted either way.
func (s *Store) DeleteGood(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.ErrStoreDetached
	}
	s.doc.Goods = without(s.doc.Goods, id)
	s.persistLocked("delete good")
	return nil
}
