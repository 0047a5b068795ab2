package reports

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// Ranking is the top good of a quantity report.
type Ranking struct {
	GoodID int    `json:"goodId"`
	Name   string `json:"name"` // from the good's first snapshot
	Units  int    `json:"units"`
}

// HistoryEntry is one transaction in a client's history. Total is nil for
// returns, which carry no amount.
type HistoryEntry struct {
	Kind  string           `json:"kind"`
	ID    int              `json:"id"`
	Date  types.Date       `json:"date"`
	Total *decimal.Decimal `json:"total"`
	Items []string         `json:"items"`
}

// Transaction kinds reported in HistoryEntry.Kind.
const (
	KindPurchase = kindPurchase
	KindReturn   = kindReturn
	KindSale     = kindSale
)

const topGoodQuery = `
SELECT li.good_id,
       (SELECT f.name FROM line_items f
          JOIN transactions ft ON ft.txn_seq = f.txn_seq
         WHERE ft.kind = ? AND f.good_id = li.good_id
         ORDER BY f.item_seq LIMIT 1) AS name,
       SUM(li.quantity) AS units
  FROM line_items li
  JOIN transactions t ON t.txn_seq = li.txn_seq
 WHERE t.kind = ?
 GROUP BY li.good_id
 ORDER BY units DESC, li.good_id ASC
 LIMIT 1`

// BestSelling returns the good with the most units across all purchases.
// Ties go to the lowest good id. ErrNoData when there are no purchases.
func (e *Engine) BestSelling() (Ranking, error) {
	return e.topGood(kindPurchase)
}

// MostInDemand returns the good with the most units across all sales.
// Ties go to the lowest good id. ErrNoData when there are no sales.
func (e *Engine) MostInDemand() (Ranking, error) {
	return e.topGood(kindSale)
}

func (e *Engine) topGood(kind string) (Ranking, error) {
	var r Ranking
	err := e.db.QueryRow(topGoodQuery, kind, kind).Scan(&r.GoodID, &r.Name, &r.Units)
	if errors.Is(err, sql.ErrNoRows) {
		return Ranking{}, fmt.Errorf("%s report: %w", kind, ErrNoData)
	}
	if err != nil {
		return Ranking{}, fmt.Errorf("%s report: %w", kind, err)
	}
	return r, nil
}

const historyQuery = `
SELECT t.txn_seq, t.kind, t.txn_id, t.txn_date, t.total, li.name
  FROM transactions t
  LEFT JOIN line_items li ON li.txn_seq = t.txn_seq
 WHERE t.party_id = ?
   AND ((t.kind = 'purchase' AND ?) OR t.kind = 'return' OR (t.kind = 'sale' AND ?))
 ORDER BY CASE t.kind WHEN 'purchase' THEN 0 WHEN 'return' THEN 1 ELSE 2 END,
          t.txn_seq, li.item_seq`

// ClientHistory lists the transactions of client id: purchases when id is
// a merchant, returns by id, and sales when id is a hunter, in that order.
// Merchant and hunter ids are separate sequences, so one id can match
// both. Returns are listed for hunters as well as merchants, since either
// may hand goods back. ErrClientNotFound when id is neither.
func (e *Engine) ClientHistory(id int) ([]HistoryEntry, error) {
	isMerchant, err := e.hasParty(kindMerchant, id)
	if err != nil {
		return nil, err
	}
	isHunter, err := e.hasParty(kindHunter, id)
	if err != nil {
		return nil, err
	}
	if !isMerchant && !isHunter {
		return nil, fmt.Errorf("client %d: %w", id, ErrClientNotFound)
	}

	rows, err := e.db.Query(historyQuery, id, flag(isMerchant), flag(isHunter))
	if err != nil {
		return nil, fmt.Errorf("client %d history: %w", id, err)
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	lastSeq := int64(-1)
	for rows.Next() {
		var (
			seq   int64
			entry HistoryEntry
			date  string
			total sql.NullString
			item  sql.NullString
		)
		if err := rows.Scan(&seq, &entry.Kind, &entry.ID, &date, &total, &item); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if seq != lastSeq {
			entry.Date = types.DateFromText(date)
			if total.Valid {
				d, err := decimal.NewFromString(total.String)
				if err != nil {
					return nil, fmt.Errorf("history total %q: %w", total.String, err)
				}
				entry.Total = &d
			}
			entry.Items = []string{}
			entries = append(entries, entry)
			lastSeq = seq
		}
		if item.Valid {
			last := &entries[len(entries)-1]
			last.Items = append(last.Items, item.String)
		}
	}
	return entries, rows.Err()
}

func (e *Engine) hasParty(kind string, id int) (bool, error) {
	var n int
	err := e.db.QueryRow(
		"SELECT COUNT(*) FROM parties WHERE kind = ? AND party_id = ?", kind, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("looking up %s %d: %w", kind, id, err)
	}
	return n > 0, nil
}

// flag converts b to the 0/1 integer SQLite uses for booleans.
func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
