package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tradepost/internal/logger"
	"github.com/mesh-intelligence/tradepost/internal/reports"
)

func (a *app) newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"report"},
		Short:   "Best-selling and most in-demand goods, client histories",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "best-selling",
			Short: "The good with the most units purchased",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withReports(func(e *reports.Engine) error {
					r, err := e.BestSelling()
					if err != nil {
						return err
					}
					return a.emit(r, func() error {
						fmt.Fprintf(a.stdout, "Best-selling item: %s (good %d) with %d units purchased.\n", r.Name, r.GoodID, r.Units)
						return nil
					})
				})
			},
		},
		&cobra.Command{
			Use:   "most-in-demand",
			Short: "The good with the most units sold",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withReports(func(e *reports.Engine) error {
					r, err := e.MostInDemand()
					if err != nil {
						return err
					}
					return a.emit(r, func() error {
						fmt.Fprintf(a.stdout, "Most in-demand item: %s (good %d) with %d units sold.\n", r.Name, r.GoodID, r.Units)
						return nil
					})
				})
			},
		},
		&cobra.Command{
			Use:   "history <client-id>",
			Short: "Every transaction of a merchant or hunter",
			Long: `History lists the purchases of the merchant with this id, the returns
made under this id, and the sales to the hunter with this id.`,
			Args: exactID,
			RunE: func(cmd *cobra.Command, args []string) error {
				id, _ := parseID(args[0])
				return a.withReports(func(e *reports.Engine) error {
					history, err := e.ClientHistory(id)
					if err != nil {
						return err
					}
					return a.emit(history, func() error {
						if len(history) == 0 {
							fmt.Fprintf(a.stdout, "No transactions found for client %d.\n", id)
							return nil
						}
						rows := make([][]string, len(history))
						for i, h := range history {
							total := "-"
							if h.Total != nil {
								total = h.Total.String()
							}
							rows[i] = []string{strings.ToUpper(h.Kind[:1]) + h.Kind[1:], strconv.Itoa(h.ID), h.Date.String(), total, strings.Join(h.Items, ", ")}
						}
						return a.table([]string{"TYPE", "ID", "DATE", "TOTAL", "ITEMS"}, rows)
					})
				})
			},
		},
	)
	return cmd
}

// withReports builds a report engine over the current store, runs fn and
// closes the engine.
func (a *app) withReports(fn func(*reports.Engine) error) error {
	e, err := reports.Build(a.store, logger.Named(a.log, "reports"))
	if err != nil {
		return sysErr(err)
	}
	defer e.Close()

	err = fn(e)
	if errors.Is(err, reports.ErrNoData) || errors.Is(err, reports.ErrClientNotFound) {
		return err
	}
	if err != nil {
		return sysErr(err)
	}
	return nil
}
