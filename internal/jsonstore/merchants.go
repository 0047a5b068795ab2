package jsonstore

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// AllMerchants returns the merchants in insertion order.
func (s *Store) AllMerchants() []types.Merchant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil
	}
	return slices.Clone(s.doc.Merchants)
}

// MerchantByID returns the merchant with the given id or types.ErrNotFound.
func (s *Store) MerchantByID(id int) (types.Merchant, error) {
	return s.merchantWhere(fmt.Sprintf("merchant %d", id), hasKey[types.Merchant](id))
}

// MerchantByName returns the first merchant named name.
func (s *Store) MerchantByName(name string) (types.Merchant, error) {
	return s.merchantWhere(fmt.Sprintf("merchant named %q", name), func(m types.Merchant) bool { return m.Name == name })
}

// MerchantByType returns the first merchant of the given type.
func (s *Store) MerchantByType(typ string) (types.Merchant, error) {
	return s.merchantWhere(fmt.Sprintf("merchant of type %q", typ), func(m types.Merchant) bool { return m.Type == typ })
}

// MerchantByLocation returns the first merchant at location.
func (s *Store) MerchantByLocation(location string) (types.Merchant, error) {
	return s.merchantWhere(fmt.Sprintf("merchant at %q", location), func(m types.Merchant) bool { return m.Location == location })
}

func (s *Store) merchantWhere(what string, pred func(types.Merchant) bool) (types.Merchant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return types.Merchant{}, types.ErrStoreDetached
	}
	if m := find(s.doc.Merchants, pred); m != nil {
		return *m, nil
	}
	return types.Merchant{}, fmt.Errorf("%s: %w", what, types.ErrNotFound)
}

// AddMerchant validates m, assigns the next merchant id, appends it and
// persists the document.
func (s *Store) AddMerchant(m *types.Merchant) (types.Merchant, error) {
	if m == nil {
		return types.Merchant{}, fmt.Errorf("add merchant: %w", types.ErrInvalidData)
	}
	if err := m.Validate(); err != nil {
		return types.Merchant{}, fmt.Errorf("add merchant: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.Merchant{}, types.ErrStoreDetached
	}

	m.ID = s.doc.nextID(types.MerchantsCollection)
	s.doc.Merchants = append(s.doc.Merchants, *m)
	s.persistLocked("add merchant")
	return *m, nil
}

// UpdateMerchant merges u into the merchant with the given id.
func (s *Store) UpdateMerchant(id int, u types.MerchantUpdate) (types.Merchant, error) {
	if err := u.Validate(); err != nil {
		return types.Merchant{}, fmt.Errorf("update merchant %d: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.Merchant{}, types.ErrStoreDetached
	}

	m := find(s.doc.Merchants, hasKey[types.Merchant](id))
	if m == nil {
		return types.Merchant{}, fmt.Errorf("update merchant %d: %w", id, types.ErrNotFound)
	}
	u.Apply(m)
	s.persistLocked("update merchant")
	return *m, nil
}

// DeleteMerchant removes the merchant with the given id, if any.
func (s *Store) DeleteMerchant(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.ErrStoreDetached
	}
	s.doc.Merchants = without(s.doc.Merchants, id)
	s.persistLocked("delete merchant")
	return nil
}
