package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// emit writes v as indented JSON in --json mode, otherwise calls text.
func (a *app) emit(v any, text func() error) error {
	if !a.flags.jsonMode {
		return text()
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysErrf("marshal JSON: %w", err)
	}
	fmt.Fprintln(a.stdout, string(out))
	return nil
}

// table writes aligned columns to stdout.
func (a *app) table(header []string, rows [][]string) error {
	w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func (a *app) printGoods(goods []types.Good) error {
	return a.emit(goods, func() error {
		if len(goods) == 0 {
			fmt.Fprintln(a.stdout, "No goods found.")
			return nil
		}
		rows := make([][]string, len(goods))
		for i, g := range goods {
			rows[i] = []string{
				strconv.Itoa(g.ID), g.Name, g.Description, g.Material,
				strconv.FormatFloat(g.Weight, 'f', -1, 64), g.Value.String(), strconv.Itoa(g.Quantity),
			}
		}
		return a.table([]string{"ID", "NAME", "DESCRIPTION", "MATERIAL", "WEIGHT", "VALUE", "QUANTITY"}, rows)
	})
}

func (a *app) printMerchants(merchants []types.Merchant) error {
	return a.emit(merchants, func() error {
		if len(merchants) == 0 {
			fmt.Fprintln(a.stdout, "No merchants found.")
			return nil
		}
		rows := make([][]string, len(merchants))
		for i, m := range merchants {
			rows[i] = []string{strconv.Itoa(m.ID), m.Name, m.Type, m.Location}
		}
		return a.table([]string{"ID", "NAME", "TYPE", "LOCATION"}, rows)
	})
}

func (a *app) printHunters(hunters []types.Hunter) error {
	return a.emit(hunters, func() error {
		if len(hunters) == 0 {
			fmt.Fprintln(a.stdout, "No hunters found.")
			return nil
		}
		rows := make([][]string, len(hunters))
		for i, h := range hunters {
			rows[i] = []string{strconv.Itoa(h.ID), h.Name, h.Race, h.Location}
		}
		return a.table([]string{"ID", "NAME", "RACE", "LOCATION"}, rows)
	})
}

// itemNames joins the names of items for a table cell.
func itemNames(items []types.LineItem) string {
	names := make([]string, len(items))
	for i, li := range items {
		names[i] = fmt.Sprintf("%s x%d", li.Name, li.Quantity)
	}
	return strings.Join(names, ", ")
}

func (a *app) printSales(sales []types.Sale) error {
	return a.emit(sales, func() error {
		if len(sales) == 0 {
			fmt.Fprintln(a.stdout, "No sales found.")
			return nil
		}
		rows := make([][]string, len(sales))
		for i, s := range sales {
			rows[i] = []string{strconv.Itoa(s.ID), s.Date.String(), strconv.Itoa(s.HunterID), itemNames(s.ItemsSold), s.TotalAmount.String()}
		}
		return a.table([]string{"ID", "DATE", "HUNTER", "ITEMS", "TOTAL"}, rows)
	})
}

func (a *app) printPurchases(purchases []types.Purchase) error {
	return a.emit(purchases, func() error {
		if len(purchases) == 0 {
			fmt.Fprintln(a.stdout, "No purchases found.")
			return nil
		}
		rows := make([][]string, len(purchases))
		for i, p := range purchases {
			rows[i] = []string{strconv.Itoa(p.ID), p.Date.String(), strconv.Itoa(p.MerchantID), itemNames(p.ItemsPurchased), p.TotalAmount.String()}
		}
		return a.table([]string{"ID", "DATE", "MERCHANT", "ITEMS", "TOTAL"}, rows)
	})
}

func (a *app) printReturns(returns []types.Return) error {
	return a.emit(returns, func() error {
		if len(returns) == 0 {
			fmt.Fprintln(a.stdout, "No returns found.")
			return nil
		}
		rows := make([][]string, len(returns))
		for i, r := range returns {
			rows[i] = []string{strconv.Itoa(r.ID), r.Date.String(), strconv.Itoa(r.CustomerID), itemNames(r.ItemsReturned)}
		}
		return a.table([]string{"ID", "DATE", "CUSTOMER", "ITEMS"}, rows)
	})
}
