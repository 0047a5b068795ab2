package jsonstore

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// Transactions carry line-item slices, so every copy that crosses the
// store boundary clones them as well.

func cloneSale(s types.Sale) types.Sale {
	s.ItemsSold = slices.Clone(s.ItemsSold)
	return s
}

func clonePurchase(p types.Purchase) types.Purchase {
	p.ItemsPurchased = slices.Clone(p.ItemsPurchased)
	return p
}

func cloneReturn(r types.Return) types.Return {
	r.ItemsReturned = slices.Clone(r.ItemsReturned)
	return r
}

func cloneAll[T any](items []T, clone func(T) T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = clone(it)
	}
	return out
}

// Sales.

// AllSales returns the sales log in insertion order.
func (s *Store) AllSales() []types.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil
	}
	return cloneAll(s.doc.Sales, cloneSale)
}

// SaleByID returns the sale with the given id or types.ErrNotFound.
func (s *Store) SaleByID(id int) (types.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return types.Sale{}, types.ErrStoreDetached
	}
	if sale := find(s.doc.Sales, hasKey[types.Sale](id)); sale != nil {
		return cloneSale(*sale), nil
	}
	return types.Sale{}, fmt.Errorf("sale %d: %w", id, types.ErrNotFound)
}

// AddSale validates sale, assigns the next sale id, appends it and
// persists the document. Stock is not touched; see internal/ledger.
func (s *Store) AddSale(sale *types.Sale) (types.Sale, error) {
	if sale == nil {
		return types.Sale{}, fmt.Errorf("add sale: %w", types.ErrInvalidData)
	}
	if err := sale.Validate(); err != nil {
		return types.Sale{}, fmt.Errorf("add sale: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.Sale{}, types.ErrStoreDetached
	}

	sale.ID = s.doc.nextID(types.SalesCollection)
	s.doc.Sales = append(s.doc.Sales, cloneSale(*sale))
	s.persistLocked("add sale")
	return cloneSale(*sale), nil
}

// UpdateSale merges u into the sale with the given id.
func (s *Store) UpdateSale(id int, u types.SaleUpdate) (types.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.Sale{}, types.ErrStoreDetached
	}

	sale := find(s.doc.Sales, hasKey[types.Sale](id))
	if sale == nil {
		return types.Sale{}, fmt.Errorf("update sale %d: %w", id, types.ErrNotFound)
	}
	u.Apply(sale)
	s.persistLocked("update sale")
	return cloneSale(*sale), nil
}

// DeleteSale removes the sale with the given id, if any.
func (s *Store) DeleteSale(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.ErrStoreDetached
	}
	s.doc.Sales = without(s.doc.Sales, id)
	s.persistLocked("delete sale")
	return nil
}

// Purchases.

// AllPurchases returns the purchases log in insertion order.
func (s *Store) AllPurchases() []types.Purchase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil
	}
	return cloneAll(s.doc.Purchases, clonePurchase)
}

// PurchaseByID returns the purchase with the given id or types.ErrNotFound.
func (s *Store) PurchaseByID(id int) (types.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return types.Purchase{}, types.ErrStoreDetached
	}
	if p := find(s.doc.Purchases, hasKey[types.Purchase](id)); p != nil {
		return clonePurchase(*p), nil
	}
	return types.Purchase{}, fmt.Errorf("purchase %d: %w", id, types.ErrNotFound)
}

// AddPurchase validates p, assigns the next purchase id, appends it and
// persists the document.
func (s *Store) AddPurchase(p *types.Purchase) (types.Purchase, error) {
	if p == nil {
		return types.Purchase{}, fmt.Errorf("add purchase: %w", types.ErrInvalidData)
	}
	if err := p.Validate(); err != nil {
		return types.Purchase{}, fmt.Errorf("add purchase: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.Purchase{}, types.ErrStoreDetached
	}

	p.ID = s.doc.nextID(types.PurchasesCollection)
	s.doc.Purchases = append(s.doc.Purchases, clonePurchase(*p))
	s.persistLocked("add purchase")
	return clonePurchase(*p), nil
}

// UpdatePurchase merges u into the purchase with the given id.
func (s *Store) UpdatePurchase(id int, u types.PurchaseUpdate) (types.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.Purchase{}, types.ErrStoreDetached
	}

	p := find(s.doc.Purchases, hasKey[types.Purchase](id))
	if p == nil {
		return types.Purchase{}, fmt.Errorf("update purchase %d: %w", id, types.ErrNotFound)
	}
	u.Apply(p)
	s.persistLocked("update purchase")
	return clonePurchase(*p), nil
}

// DeletePurchase removes the purchase with the given id, if any.
func (s *Store) DeletePurchase(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.ErrStoreDetached
	}
	s.doc.Purchases = without(s.doc.Purchases, id)
	s.persistLocked("delete purchase")
	return nil
}

// Returns.

// AllReturns returns the returns log in insertion order.
func (s *Store) AllReturns() []types.Return {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil
	}
	return cloneAll(s.doc.Returns, cloneReturn)
}

// ReturnByID returns the return with the given id or types.ErrNotFound.
func (s *Store) ReturnByID(id int) (types.Return, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return types.Return{}, types.ErrStoreDetached
	}
	if r := find(s.doc.Returns, hasKey[types.Return](id)); r != nil {
		return cloneReturn(*r), nil
	}
	return types.Return{}, fmt.Errorf("return %d: %w", id, types.ErrNotFound)
}

// AddReturn validates r, assigns the next return id, appends it and
// persists the document.
func (s *Store) AddReturn(r *types.Return) (types.Return, error) {
	if r == nil {
		return types.Return{}, fmt.Errorf("add return: %w", types.ErrInvalidData)
	}
	if err := r.Validate(); err != nil {
		return types.Return{}, fmt.Errorf("add return: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.Return{}, types.ErrStoreDetached
	}

	r.ID = s.doc.nextID(types.ReturnsCollection)
	s.doc.Returns = append(s.doc.Returns, cloneReturn(*r))
	s.persistLocked("add return")
	return cloneReturn(*r), nil
}

// UpdateReturn merges u into the return with the given id.
func (s *Store) UpdateReturn(id int, u types.ReturnUpdate) (types.Return, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.Return{}, types.ErrStoreDetached
	}

	r := find(s.doc.Returns, hasKey[types.Return](id))
	if r == nil {
		return types.Return{}, fmt.Errorf("update return %d: %w", id, types.ErrNotFound)
	}
	u.Apply(r)
	s.persistLocked("update return")
	return cloneReturn(*r), nil
}

// DeleteReturn removes the return with the given id, if any.
func (s *Store) DeleteReturn(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return types.ErrStoreDetached
	}
	s.doc.Returns = without(s.doc.Returns, id)
	s.persistLocked("delete return")
	return nil
}
