package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tradepost/internal/ledger"
	"github.com/mesh-intelligence/tradepost/pkg/types"
)

func (a *app) newMerchantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "merchants",
		Aliases: []string{"merchant"},
		Short:   "Manage the merchants the inn trades with",
	}
	cmd.AddCommand(
		a.newMerchantsAddCmd(),
		a.newMerchantsListCmd(),
		a.newMerchantsGetCmd(),
		a.newMerchantsDeleteCmd(),
		a.newMerchantsSearchCmd(),
		a.newMerchantsUpdateCmd(),
	)
	return cmd
}

func (a *app) newMerchantsAddCmd() *cobra.Command {
	var m types.Merchant
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a merchant",
		Example: `  tradepost merchants add --name Hattori --type Blacksmith --location Novigrad`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			added, err := a.store.AddMerchant(&m)
			if err != nil {
				return err
			}
			return a.emit(added, func() error {
				fmt.Fprintf(a.stdout, "Added merchant %d: %s\n", added.ID, added.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&m.Name, "name", "", "merchant name (required)")
	cmd.Flags().StringVar(&m.Type, "type", "", "speciality, e.g. Blacksmith")
	cmd.Flags().StringVar(&m.Location, "location", "", "where the merchant trades")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) newMerchantsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every merchant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printMerchants(a.store.AllMerchants())
		},
	}
}

func (a *app) newMerchantsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one merchant",
		Args:  exactID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])
			m, err := a.store.MerchantByID(id)
			if err != nil {
				return err
			}
			return a.printMerchants([]types.Merchant{m})
		},
	}
}

func (a *app) newMerchantsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a merchant",
		Args:  exactID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])
			m, err := a.store.MerchantByID(id)
			if err != nil {
				return err
			}
			if err := a.store.DeleteMerchant(id); err != nil {
				return err
			}
			return a.emit(m, func() error {
				fmt.Fprintf(a.stdout, "Deleted merchant %d: %s\n", m.ID, m.Name)
				return nil
			})
		},
	}
}

func (a *app) newMerchantsSearchCmd() *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:     "search <query>",
		Short:   "Find merchants whose name, type or location starts with query",
		Example: `  tradepost merchants search --by type black`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merchants, err := a.ledger.SearchMerchants(by, args[0])
			if err != nil {
				return err
			}
			return a.printMerchants(merchants)
		},
	}
	cmd.Flags().StringVar(&by, "by", ledger.FieldName, "field to match: name, type or location")
	return cmd
}

func (a *app) newMerchantsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a merchant",
		Args:  exactID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])
			u := types.MerchantUpdate{
				Name:     changedString(cmd, "name"),
				Type:     changedString(cmd, "type"),
				Location: changedString(cmd, "location"),
			}
			if u.Name == nil && u.Type == nil && u.Location == nil {
				return fmt.Errorf("%w: no fields to update", types.ErrInvalidData)
			}
			m, err := a.store.UpdateMerchant(id, u)
			if err != nil {
				return err
			}
			return a.printMerchants([]types.Merchant{m})
		},
	}
	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("type", "", "new speciality")
	cmd.Flags().String("location", "", "new location")
	return cmd
}
