package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tradepost/internal/ledger"
	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// tradeFlags are the flags shared by the record commands.
type tradeFlags struct {
	party    int
	good     int
	quantity int
	date     string
}

func (f *tradeFlags) register(cmd *cobra.Command, party, partyHelp string) {
	cmd.Flags().IntVar(&f.party, party, 0, partyHelp+" (required)")
	cmd.Flags().IntVar(&f.good, "good", 0, "id of the good (required)")
	cmd.Flags().IntVar(&f.quantity, "quantity", 1, "number of units")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired(party)
	_ = cmd.MarkFlagRequired("good")
}

// printStockChange reports what a transaction did to stock.
func (a *app) printStockChange(c ledger.StockChange) {
	if c.Removed {
		fmt.Fprintf(a.stdout, "Good %d is out of stock and was removed from the inventory.\n", c.GoodID)
		return
	}
	fmt.Fprintf(a.stdout, "Good %d stock: %d -> %d\n", c.GoodID, c.Before, c.After)
}

// tradeResult is the --json shape of a record command.
type tradeResult struct {
	Transaction any                `json:"transaction"`
	Stock       ledger.StockChange `json:"stock"`
}

func (a *app) newSalesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sales",
		Aliases: []string{"sale"},
		Short:   "Record and review sales to hunters",
	}

	var f tradeFlags
	record := &cobra.Command{
		Use:     "record",
		Short:   "Sell goods to a hunter",
		Example: `  tradepost sales record --hunter 1 --good 1 --quantity 2 --date 2025-03-21`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := types.ParseDate(f.date)
			if err != nil {
				return err
			}
			sale, change, err := a.ledger.RecordSale(ledger.SaleRequest{
				HunterID: f.party, GoodID: f.good, Quantity: f.quantity, Date: date,
			})
			if err != nil {
				return err
			}
			return a.emit(tradeResult{sale, change}, func() error {
				fmt.Fprintf(a.stdout, "Recorded sale %d: %s for %s crowns\n", sale.ID, itemNames(sale.ItemsSold), sale.TotalAmount)
				a.printStockChange(change)
				return nil
			})
		},
	}
	f.register(record, "hunter", "id of the buying hunter")

	cmd.AddCommand(
		record,
		&cobra.Command{
			Use:   "list",
			Short: "List every sale",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printSales(a.store.AllSales())
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Remove a sale from the log (stock is not restored)",
			Args:  exactID,
			RunE: func(cmd *cobra.Command, args []string) error {
				id, _ := parseID(args[0])
				if _, err := a.store.SaleByID(id); err != nil {
					return err
				}
				if err := a.store.DeleteSale(id); err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "Deleted sale %d\n", id)
				return nil
			},
		},
	)
	return cmd
}

func (a *app) newPurchasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "purchases",
		Aliases: []string{"purchase"},
		Short:   "Record and review trades with merchants",
	}

	var f tradeFlags
	record := &cobra.Command{
		Use:   "record",
		Short: "Record a trade of goods with a merchant",
		Long: `Record a purchase against a merchant. The units leave the inn's stock,
and a good whose stock runs out is removed from the inventory.`,
		Example: `  tradepost purchases record --merchant 1 --good 2 --quantity 5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := types.ParseDate(f.date)
			if err != nil {
				return err
			}
			p, change, err := a.ledger.RecordPurchase(ledger.PurchaseRequest{
				MerchantID: f.party, GoodID: f.good, Quantity: f.quantity, Date: date,
			})
			if err != nil {
				return err
			}
			return a.emit(tradeResult{p, change}, func() error {
				fmt.Fprintf(a.stdout, "Recorded purchase %d: %s for %s crowns\n", p.ID, itemNames(p.ItemsPurchased), p.TotalAmount)
				a.printStockChange(change)
				return nil
			})
		},
	}
	f.register(record, "merchant", "id of the merchant")

	cmd.AddCommand(
		record,
		&cobra.Command{
			Use:   "list",
			Short: "List every purchase",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printPurchases(a.store.AllPurchases())
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Remove a purchase from the log (stock is not restored)",
			Args:  exactID,
			RunE: func(cmd *cobra.Command, args []string) error {
				id, _ := parseID(args[0])
				if _, err := a.store.PurchaseByID(id); err != nil {
					return err
				}
				if err := a.store.DeletePurchase(id); err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "Deleted purchase %d\n", id)
				return nil
			},
		},
	)
	return cmd
}

func (a *app) newReturnsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "returns",
		Aliases: []string{"return"},
		Short:   "Record and review goods handed back",
	}

	var f tradeFlags
	record := &cobra.Command{
		Use:     "record",
		Short:   "Take goods back from a hunter or merchant",
		Example: `  tradepost returns record --customer 1 --good 1 --quantity 1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := types.ParseDate(f.date)
			if err != nil {
				return err
			}
			r, change, err := a.ledger.RecordReturn(ledger.ReturnRequest{
				CustomerID: f.party, GoodID: f.good, Quantity: f.quantity, Date: date,
			})
			if err != nil {
				return err
			}
			return a.emit(tradeResult{r, change}, func() error {
				fmt.Fprintf(a.stdout, "Recorded return %d: %s\n", r.ID, itemNames(r.ItemsReturned))
				a.printStockChange(change)
				return nil
			})
		},
	}
	f.register(record, "customer", "id of the returning hunter or merchant")

	cmd.AddCommand(
		record,
		&cobra.Command{
			Use:   "list",
			Short: "List every return",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printReturns(a.store.AllReturns())
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Remove a return from the log (stock is not changed)",
			Args:  exactID,
			RunE: func(cmd *cobra.Command, args []string) error {
				id, _ := parseID(args[0])
				if _, err := a.store.ReturnByID(id); err != nil {
					return err
				}
				if err := a.store.DeleteReturn(id); err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "Deleted return %d\n", id)
				return nil
			},
		},
	)
	return cmd
}
