package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tradepost/pkg/tradepost"
)

const modulePath = "github.com/mesh-intelligence/tradepost"

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the tradepost version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoStore: "true"},
		// Skip the root setup: version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.stdout, "tradepost v%s\nmodule: %s\n", tradepost.Version, modulePath)
			return nil
		},
	}
}
