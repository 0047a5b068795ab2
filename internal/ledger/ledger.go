// Package ledger records sales, purchases and returns against the store and
// keeps Good quantities in step with them.
//
// A sale or purchase takes units out of stock; a Good that runs out is
// removed from inventory. A return puts units back and never removes a
// Good. Requests for more units than are in stock are rejected with
// types.ErrInsufficientStock and change nothing.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// Store is the part of the repository the ledger works against.
// *jsonstore.Store satisfies it.
type Store interface {
	AllGoods() []types.Good
	GoodByID(id int) (types.Good, error)
	UpdateGood(id int, u types.GoodUpdate) (types.Good, error)
	DeleteGood(id int) error

	AllMerchants() []types.Merchant
	MerchantByID(id int) (types.Merchant, error)
	AllHunters() []types.Hunter
	HunterByID(id int) (types.Hunter, error)

	AddSale(s *types.Sale) (types.Sale, error)
	AddPurchase(p *types.Purchase) (types.Purchase, error)
	AddReturn(r *types.Return) (types.Return, error)
}

// Ledger records transactions. Calls on one Ledger are serialised so the
// stock check and the stock update of a transaction see the same quantity.
type Ledger struct {
	mu    sync.Mutex
	store Store
	log   *zap.Logger
	now   func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

// WithClock sets the clock used to date requests that carry no date.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New returns a Ledger over store.
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SaleRequest asks to sell Quantity units of a Good to a hunter.
type SaleRequest struct {
	HunterID int
	GoodID   int
	Quantity int
	Date     types.Date // zero means today
}

// PurchaseRequest records Quantity units of a Good leaving the inn in a
// trade with a merchant.
type PurchaseRequest struct {
	MerchantID int
	GoodID     int
	Quantity   int
	Date       types.Date
}

// ReturnRequest hands Quantity units of a Good back to stock. CustomerID is
// a hunter or a merchant.
type ReturnRequest struct {
	CustomerID int
	GoodID     int
	Quantity   int
	Date       types.Date
}

// StockChange describes what a transaction did to a Good's quantity.
type StockChange struct {
	GoodID  int  `json:"goodId"`
	Before  int  `json:"before"`
	After   int  `json:"after"`
	Removed bool `json:"removed"` // the Good ran out and was deleted
}

// RecordSale stores a sale of req.Quantity units at the Good's current value
// and takes the units out of stock.
func (l *Ledger) RecordSale(req SaleRequest) (types.Sale, StockChange, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.store.HunterByID(req.HunterID); err != nil {
		return types.Sale{}, StockChange{}, fmt.Errorf("record sale: %w", err)
	}
	good, err := l.takeable(req.GoodID, req.Quantity)
	if err != nil {
		return types.Sale{}, StockChange{}, fmt.Errorf("record sale: %w", err)
	}

	items := []types.LineItem{types.NewLineItem(good, req.Quantity)}
	sale, err := l.store.AddSale(&types.Sale{
		Date:        l.dateOr(req.Date),
		HunterID:    req.HunterID,
		ItemsSold:   items,
		TotalAmount: types.Total(items),
	})
	if err != nil {
		return types.Sale{}, StockChange{}, fmt.Errorf("record sale: %w", err)
	}

	change, err := l.consume(good, req.Quantity)
	if err != nil {
		return sale, change, fmt.Errorf("record sale %d: %w", sale.ID, err)
	}
	l.log.Info("sale recorded",
		zap.Int("sale_id", sale.ID),
		zap.Int("hunter_id", sale.HunterID),
		zap.Int("good_id", good.ID),
		zap.Int("quantity", req.Quantity),
		zap.Stringer("total", sale.TotalAmount),
		zap.Bool("good_removed", change.Removed))
	return sale, change, nil
}

// RecordPurchase stores a purchase of req.Quantity units at the Good's
// current value and takes the units out of stock, like a sale.
func (l *Ledger) RecordPurchase(req PurchaseRequest) (types.Purchase, StockChange, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.store.MerchantByID(req.MerchantID); err != nil {
		return types.Purchase{}, StockChange{}, fmt.Errorf("record purchase: %w", err)
	}
	good, err := l.takeable(req.GoodID, req.Quantity)
	if err != nil {
		return types.Purchase{}, StockChange{}, fmt.Errorf("record purchase: %w", err)
	}

	items := []types.LineItem{types.NewLineItem(good, req.Quantity)}
	purchase, err := l.store.AddPurchase(&types.Purchase{
		Date:           l.dateOr(req.Date),
		MerchantID:     req.MerchantID,
		ItemsPurchased: items,
		TotalAmount:    types.Total(items),
	})
	if err != nil {
		return types.Purchase{}, StockChange{}, fmt.Errorf("record purchase: %w", err)
	}

	change, err := l.consume(good, req.Quantity)
	if err != nil {
		return purchase, change, fmt.Errorf("record purchase %d: %w", purchase.ID, err)
	}
	l.log.Info("purchase recorded",
		zap.Int("purchase_id", purchase.ID),
		zap.Int("merchant_id", purchase.MerchantID),
		zap.Int("good_id", good.ID),
		zap.Int("quantity", req.Quantity),
		zap.Stringer("total", purchase.TotalAmount),
		zap.Bool("good_removed", change.Removed))
	return purchase, change, nil
}

// RecordReturn stores a return and puts req.Quantity units back in stock.
// The customer may be a hunter or a merchant.
func (l *Ledger) RecordReturn(req ReturnRequest) (types.Return, StockChange, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkCustomer(req.CustomerID); err != nil {
		return types.Return{}, StockChange{}, fmt.Errorf("record return: %w", err)
	}
	if req.Quantity <= 0 {
		return types.Return{}, StockChange{}, fmt.Errorf("record return: %w", types.ErrNonPositiveQuantity)
	}
	good, err := l.store.GoodByID(req.GoodID)
	if err != nil {
		return types.Return{}, StockChange{}, fmt.Errorf("record return: %w", err)
	}

	ret, err := l.store.AddReturn(&types.Return{
		Date:          l.dateOr(req.Date),
		CustomerID:    req.CustomerID,
		ItemsReturned: []types.LineItem{types.NewLineItem(good, req.Quantity)},
	})
	if err != nil {
		return types.Return{}, StockChange{}, fmt.Errorf("record return: %w", err)
	}

	after := good.Quantity + req.Quantity
	change := StockChange{GoodID: good.ID, Before: good.Quantity, After: after}
	if _, err := l.store.UpdateGood(good.ID, types.GoodUpdate{Quantity: &after}); err != nil {
		return ret, change, fmt.Errorf("record return %d: %w", ret.ID, err)
	}
	l.log.Info("return recorded",
		zap.Int("return_id", ret.ID),
		zap.Int("customer_id", ret.CustomerID),
		zap.Int("good_id", good.ID),
		zap.Int("quantity", req.Quantity))
	return ret, change, nil
}

// Stock is a snapshot of inventory levels.
type Stock struct {
	Goods []types.Good `json:"goods"`
	Total int          `json:"total"` // sum of all quantities
}

// StockLevels returns every Good with its quantity and the total number of
// units held.
func (l *Ledger) StockLevels() Stock {
	goods := l.store.AllGoods()
	total := 0
	for _, g := range goods {
		total += g.Quantity
	}
	return Stock{Goods: goods, Total: total}
}

// takeable loads the Good and checks that quantity units can be taken.
func (l *Ledger) takeable(goodID, quantity int) (types.Good, error) {
	if quantity <= 0 {
		return types.Good{}, types.ErrNonPositiveQuantity
	}
	good, err := l.store.GoodByID(goodID)
	if err != nil {
		return types.Good{}, err
	}
	if quantity > good.Quantity {
		return types.Good{}, fmt.Errorf("good %d has %d, asked for %d: %w",
			good.ID, good.Quantity, quantity, types.ErrInsufficientStock)
	}
	return good, nil
}

// consume takes quantity units of good out of stock, deleting the Good when
// nothing is left.
func (l *Ledger) consume(good types.Good, quantity int) (StockChange, error) {
	after := good.Quantity - quantity
	change := StockChange{GoodID: good.ID, Before: good.Quantity, After: after}
	if after <= 0 {
		change.After = 0
		change.Removed = true
		return change, l.store.DeleteGood(good.ID)
	}
	_, err := l.store.UpdateGood(good.ID, types.GoodUpdate{Quantity: &after})
	return change, err
}

func (l *Ledger) checkCustomer(id int) error {
	if _, err := l.store.HunterByID(id); err == nil {
		return nil
	}
	if _, err := l.store.MerchantByID(id); err == nil {
		return nil
	}
	return fmt.Errorf("customer %d: %w", id, types.ErrNotFound)
}

func (l *Ledger) dateOr(d types.Date) types.Date {
	if d.IsZero() {
		return types.DateOf(l.now())
	}
	return d
}
