package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tradepost/internal/ledger"
	"github.com/mesh-intelligence/tradepost/pkg/types"
)

func (a *app) newHuntersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hunters",
		Aliases: []string{"hunter"},
		Short:   "Manage the monster hunters who buy from the inn",
	}
	cmd.AddCommand(
		a.newHuntersAddCmd(),
		a.newHuntersListCmd(),
		a.newHuntersGetCmd(),
		a.newHuntersDeleteCmd(),
		a.newHuntersSearchCmd(),
		a.newHuntersUpdateCmd(),
	)
	return cmd
}

func (a *app) newHuntersAddCmd() *cobra.Command {
	var h types.Hunter
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a hunter",
		Example: `  tradepost hunters add --name "Geralt of Rivia" --race Human --location "Kaer Morhen"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			added, err := a.store.AddHunter(&h)
			if err != nil {
				return err
			}
			return a.emit(added, func() error {
				fmt.Fprintf(a.stdout, "Added hunter %d: %s\n", added.ID, added.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&h.Name, "name", "", "hunter name (required)")
	cmd.Flags().StringVar(&h.Race, "race", "", "race, e.g. Human or Dwarf")
	cmd.Flags().StringVar(&h.Location, "location", "", "where the hunter is based")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) newHuntersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every hunter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printHunters(a.store.AllHunters())
		},
	}
}

func (a *app) newHuntersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one hunter",
		Args:  exactID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])
			h, err := a.store.HunterByID(id)
			if err != nil {
				return err
			}
			return a.printHunters([]types.Hunter{h})
		},
	}
}

func (a *app) newHuntersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a hunter",
		Args:  exactID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])
			h, err := a.store.HunterByID(id)
			if err != nil {
				return err
			}
			if err := a.store.DeleteHunter(id); err != nil {
				return err
			}
			return a.emit(h, func() error {
				fmt.Fprintf(a.stdout, "Deleted hunter %d: %s\n", h.ID, h.Name)
				return nil
			})
		},
	}
}

func (a *app) newHuntersSearchCmd() *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:     "search <query>",
		Short:   "Find hunters whose name, race or location starts with query",
		Example: `  tradepost hunters search --by race dwarf`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hunters, err := a.ledger.SearchHunters(by, args[0])
			if err != nil {
				return err
			}
			return a.printHunters(hunters)
		},
	}
	cmd.Flags().StringVar(&by, "by", ledger.FieldName, "field to match: name, race or location")
	return cmd
}

func (a *app) newHuntersUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a hunter",
		Args:  exactID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])
			u := types.HunterUpdate{
				Name:     changedString(cmd, "name"),
				Race:     changedString(cmd, "race"),
				Location: changedString(cmd, "location"),
			}
			if u.Name == nil && u.Race == nil && u.Location == nil {
				return fmt.Errorf("%w: no fields to update", types.ErrInvalidData)
			}
			h, err := a.store.UpdateHunter(id, u)
			if err != nil {
				return err
			}
			return a.printHunters([]types.Hunter{h})
		},
	}
	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("race", "", "new race")
	cmd.Flags().String("location", "", "new location")
	return cmd
}
