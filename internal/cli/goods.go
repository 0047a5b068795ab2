package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tradepost/internal/ledger"
	"github.com/mesh-intelligence/tradepost/pkg/types"
)

func (a *app) newGoodsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goods",
		Aliases: []string{"good"},
		Short:   "Manage the inn's goods",
	}
	cmd.AddCommand(
		a.newGoodsAddCmd(),
		a.newGoodsListCmd(),
		a.newGoodsGetCmd(),
		a.newGoodsDeleteCmd(),
		a.newGoodsSearchCmd(),
		a.newGoodsUpdateCmd(),
		a.newGoodsStockCmd(),
	)
	return cmd
}

func (a *app) newGoodsAddCmd() *cobra.Command {
	var (
		g     types.Good
		value string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a good to the inventory",
		Example: `  tradepost goods add --name "Silver Sword" --description "A witcher's silver blade." \
      --material Silver --weight 3.5 --value 250 --quantity 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseCrowns(value)
			if err != nil {
				return err
			}
			g.Value = v
			added, err := a.store.AddGood(&g)
			if err != nil {
				return err
			}
			return a.emit(added, func() error {
				fmt.Fprintf(a.stdout, "Added good %d: %s\n", added.ID, added.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&g.Name, "name", "", "name of the good (required)")
	cmd.Flags().StringVar(&g.Description, "description", "", "description")
	cmd.Flags().StringVar(&g.Material, "material", "", "material")
	cmd.Flags().Float64Var(&g.Weight, "weight", 0, "weight")
	cmd.Flags().StringVar(&value, "value", "0", "price per unit in crowns")
	cmd.Flags().IntVar(&g.Quantity, "quantity", 0, "units in stock")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) newGoodsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every good",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printGoods(a.store.AllGoods())
		},
	}
}

func (a *app) newGoodsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one good",
		Args:  exactID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])
			g, err := a.store.GoodByID(id)
			if err != nil {
				return err
			}
			return a.printGoods([]types.Good{g})
		},
	}
}

func (a *app) newGoodsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a good from the inventory",
		Args:  exactID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])
			g, err := a.store.GoodByID(id)
			if err != nil {
				return err
			}
			if err := a.store.DeleteGood(id); err != nil {
				return err
			}
			return a.emit(g, func() error {
				fmt.Fprintf(a.stdout, "Deleted good %d: %s\n", g.ID, g.Name)
				return nil
			})
		},
	}
}

func (a *app) newGoodsSearchCmd() *cobra.Command {
	var by, order string
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find goods whose name or description starts with query",
		Long: `Search matches the start of the chosen field, ignoring case.

Sort orders: name, name-desc, price, price-desc. Without --sort, goods
are listed in the order they were added.`,
		Example: `  tradepost goods search sil
  tradepost goods search --by description "a witcher" --sort price-desc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goods, err := a.ledger.SearchGoods(by, args[0], order)
			if err != nil {
				return err
			}
			return a.printGoods(goods)
		},
	}
	cmd.Flags().StringVar(&by, "by", ledger.FieldName, "field to match: name or description")
	cmd.Flags().StringVar(&order, "sort", ledger.SortNone, "sort order: name, name-desc, price or price-desc")
	return cmd
}

func (a *app) newGoodsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Change fields of a good",
		Example: `  tradepost goods update 1 --value 300 --quantity 5`,
		Args:    exactID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])
			u := types.GoodUpdate{
				Name:        changedString(cmd, "name"),
				Description: changedString(cmd, "description"),
				Material:    changedString(cmd, "material"),
			}
			if cmd.Flags().Changed("weight") {
				w, _ := cmd.Flags().GetFloat64("weight")
				u.Weight = &w
			}
			if s := changedString(cmd, "value"); s != nil {
				v, err := parseCrowns(*s)
				if err != nil {
					return err
				}
				u.Value = &v
			}
			if cmd.Flags().Changed("quantity") {
				q, _ := cmd.Flags().GetInt("quantity")
				u.Quantity = &q
			}
			if u.IsEmpty() {
				return fmt.Errorf("%w: no fields to update", types.ErrInvalidData)
			}

			g, err := a.store.UpdateGood(id, u)
			if err != nil {
				return err
			}
			return a.printGoods([]types.Good{g})
		},
	}
	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("description", "", "new description")
	cmd.Flags().String("material", "", "new material")
	cmd.Flags().Float64("weight", 0, "new weight")
	cmd.Flags().String("value", "", "new price per unit in crowns")
	cmd.Flags().Int("quantity", 0, "new quantity")
	return cmd
}

func (a *app) newGoodsStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "Show stock levels and the total number of units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stock := a.ledger.StockLevels()
			return a.emit(stock, func() error {
				rows := make([][]string, len(stock.Goods))
				for i, g := range stock.Goods {
					rows[i] = []string{strconv.Itoa(g.ID), g.Name, strconv.Itoa(g.Quantity)}
				}
				rows = append(rows, []string{"", "TOTAL", strconv.Itoa(stock.Total)})
				return a.table([]string{"ID", "NAME", "QUANTITY"}, rows)
			})
		},
	}
}
