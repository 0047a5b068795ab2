package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the trading post",
		Long: `Init writes a default config.yaml to the configuration directory if
there is none, then creates the data directory and an empty document.
Running it again leaves existing files alone.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoStore: "true"},
		RunE:        a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg := configFile{
		File: a.config.GetFile(),
		Sync: a.config.GetSync(),
	}
	// Only pin data_dir when it was chosen explicitly.
	if a.flags.dataDir != "" {
		cfg.DataDir = a.dataDir.Path
	}
	written, err := writeConfigIfMissing(a.configDir.Path, cfg)
	if err != nil {
		return sysErr(err)
	}
	if written {
		a.log.Info("config written", zap.String("config_dir", a.configDir.Path))
	}

	if err := a.attach(); err != nil {
		return err
	}
	counts := fmt.Sprintf("%d goods, %d merchants, %d hunters",
		len(a.store.AllGoods()), len(a.store.AllMerchants()), len(a.store.AllHunters()))

	fmt.Fprintf(a.stdout, "Trading post initialized at %s (%s)\n", a.store.Path(), counts)
	return nil
}
