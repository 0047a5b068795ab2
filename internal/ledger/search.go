package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// Search fields.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldType        = "type"
	FieldRace        = "race"
	FieldLocation    = "location"
)

// Sort orders for goods. The empty order keeps insertion order.
const (
	SortNone      = ""
	SortName      = "name"
	SortNameDesc  = "name-desc"
	SortPrice     = "price"
	SortPriceDesc = "price-desc"
)

// SearchGoods returns the goods whose field starts with query, ignoring
// case, in the requested order. Field is name or description.
func (l *Ledger) SearchGoods(field, query, order string) ([]types.Good, error) {
	var key func(types.Good) string
	switch field {
	case FieldName:
		key = func(g types.Good) string { return g.Name }
	case FieldDescription:
		key = func(g types.Good) string { return g.Description }
	default:
		return nil, fmt.Errorf("search goods by %q: %w", field, types.ErrInvalidField)
	}

	var cmp func(a, b types.Good) int
	switch order {
	case SortNone:
	case SortName:
		cmp = func(a, b types.Good) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) }
	case SortNameDesc:
		cmp = func(a, b types.Good) int { return strings.Compare(strings.ToLower(b.Name), strings.ToLower(a.Name)) }
	case SortPrice:
		cmp = func(a, b types.Good) int { return a.Value.Cmp(b.Value) }
	case SortPriceDesc:
		cmp = func(a, b types.Good) int { return b.Value.Cmp(a.Value) }
	default:
		return nil, fmt.Errorf("sort goods by %q: %w", order, types.ErrInvalidSort)
	}

	goods := prefixMatch(l.store.AllGoods(), key, query)
	if cmp != nil {
		slices.SortStableFunc(goods, cmp)
	}
	return goods, nil
}

// SearchMerchants returns the merchants whose field starts with query,
// ignoring case. Field is name, type or location.
func (l *Ledger) SearchMerchants(field, query string) ([]types.Merchant, error) {
	var key func(types.Merchant) string
	switch field {
	case FieldName:
		key = func(m types.Merchant) string { return m.Name }
	case FieldType:
		key = func(m types.Merchant) string { return m.Type }
	case FieldLocation:
		key = func(m types.Merchant) string { return m.Location }
	default:
		return nil, fmt.Errorf("search merchants by %q: %w", field, types.ErrInvalidField)
	}
	return prefixMatch(l.store.AllMerchants(), key, query), nil
}

// SearchHunters returns the hunters whose field starts with query, ignoring
// case. Field is name, race or location.
func (l *Ledger) SearchHunters(field, query string) ([]types.Hunter, error) {
	var key func(types.Hunter) string
	switch field {
	case FieldName:
		key = func(h types.Hunter) string { return h.Name }
	case FieldRace:
		key = func(h types.Hunter) string { return h.Race }
	case FieldLocation:
		key = func(h types.Hunter) string { return h.Location }
	default:
		return nil, fmt.Errorf("search hunters by %q: %w", field, types.ErrInvalidField)
	}
	return prefixMatch(l.store.AllHunters(), key, query), nil
}

func prefixMatch[T any](items []T, key func(T) string, query string) []T {
	query = strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.HasPrefix(strings.ToLower(key(it)), query) {
			out = append(out, it)
		}
	}
	return out
}
