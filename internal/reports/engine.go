// Package reports answers the trading-post reports (best-selling item,
// most in-demand item, client history) by loading the transaction logs
// into an in-memory SQLite database and querying it.
//
// An Engine is a snapshot: it reflects the store at the time Build was
// called.
package reports

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// Report errors.
var (
	ErrNoData         = errors.New("no transactions to report on")
	ErrClientNotFound = errors.New("client not found")
)

// Source is the part of the repository the reports read.
// *jsonstore.Store satisfies it.
type Source interface {
	AllMerchants() []types.Merchant
	AllHunters() []types.Hunter
	AllSales() []types.Sale
	AllPurchases() []types.Purchase
	AllReturns() []types.Return
}

// Engine runs report queries over a loaded snapshot.
type Engine struct {
	db  *sql.DB
	log *zap.Logger
}

// Build opens an in-memory database, creates the schema and loads every
// party and transaction from src. Close the engine when done.
func Build(src Source, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open report database: %w", err)
	}
	// Each connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create report schema: %w", err)
		}
	}

	e := &Engine{db: db, log: log}
	if err := e.load(src); err != nil {
		db.Close()
		return nil, err
	}
	return e, nil
}

// Close releases the database.
func (e *Engine) Close() error {
	return e.db.Close()
}

// load copies src into the database in one transaction.
func (e *Engine) load(src Source) error {
	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	l := loader{tx: tx}
	for _, m := range src.AllMerchants() {
		l.party(kindMerchant, m.ID, m.Name)
	}
	for _, h := range src.AllHunters() {
		l.party(kindHunter, h.ID, h.Name)
	}

	purchases := src.AllPurchases()
	for _, p := range purchases {
		total := p.TotalAmount.String()
		l.transaction(kindPurchase, p.ID, p.MerchantID, p.Date, &total, p.ItemsPurchased)
	}
	returns := src.AllReturns()
	for _, r := range returns {
		l.transaction(kindReturn, r.ID, r.CustomerID, r.Date, nil, r.ItemsReturned)
	}
	sales := src.AllSales()
	for _, s := range sales {
		total := s.TotalAmount.String()
		l.transaction(kindSale, s.ID, s.HunterID, s.Date, &total, s.ItemsSold)
	}
	if l.err != nil {
		return fmt.Errorf("loading report data: %w", l.err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	e.log.Debug("report data loaded",
		zap.Int("purchases", len(purchases)),
		zap.Int("returns", len(returns)),
		zap.Int("sales", len(sales)),
		zap.Int("line_items", l.items))
	return nil
}

// loader inserts rows and remembers the first error, so the load loop
// reads straight through.
type loader struct {
	tx    *sql.Tx
	seq   int64
	items int
	err   error
}

func (l *loader) party(kind string, id int, name string) {
	if l.err != nil {
		return
	}
	// INSERT OR IGNORE tolerates duplicate ids in hand-edited documents.
	_, l.err = l.tx.Exec(
		"INSERT OR IGNORE INTO parties (party_id, kind, name) VALUES (?, ?, ?)",
		id, kind, name)
}

func (l *loader) transaction(kind string, id, partyID int, date types.Date, total *string, items []types.LineItem) {
	if l.err != nil {
		return
	}
	l.seq++
	var totalArg any
	if total != nil {
		totalArg = *total
	}
	if _, l.err = l.tx.Exec(
		"INSERT INTO transactions (txn_seq, kind, txn_id, party_id, txn_date, total) VALUES (?, ?, ?, ?, ?, ?)",
		l.seq, kind, id, partyID, date.String(), totalArg); l.err != nil {
		return
	}
	for _, li := range items {
		if _, l.err = l.tx.Exec(
			"INSERT INTO line_items (txn_seq, good_id, name, quantity, price) VALUES (?, ?, ?, ?, ?)",
			l.seq, li.ID, li.Name, li.Quantity, li.Value.String()); l.err != nil {
			return
		}
		l.items++
	}
}
