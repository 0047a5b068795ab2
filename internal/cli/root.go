// Package cli implements the tradepost command-line interface.
//
// Every invocation builds a fresh command tree around an app value, so the
// tree carries no package-level state and tests can drive it in process
// through Run.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/tradepost/internal/jsonstore"
	"github.com/mesh-intelligence/tradepost/internal/ledger"
	"github.com/mesh-intelligence/tradepost/internal/logger"
	"github.com/mesh-intelligence/tradepost/internal/paths"
	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// annotationNoStore marks commands that run without an attached store.
const annotationNoStore = "tradepost/no-store"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app is the state shared by the commands of one invocation.
type app struct {
	flags  rootFlags
	stdout io.Writer
	stderr io.Writer

	log       *zap.Logger
	configDir paths.Dir
	dataDir   paths.Dir
	config    types.Config
	store     *jsonstore.Store
	ledger    *ledger.Ledger
}

// sysError marks a failure of the environment rather than of the request;
// it exits with exitSysError.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &sysError{err: err}
}

func sysErrf(format string, args ...any) error {
	return &sysError{err: fmt.Errorf(format, args...)}
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *sysError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tradepost",
		Short: "Inventory and trade ledger for the White Wolf Inn",
		Long: `Tradepost keeps the inn's goods, merchants and hunters, and records the
sales, purchases and returns that move goods in and out of stock.

Everything is kept in one JSON document under the data directory.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.tradepost)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.tradepost-db)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug detail to stderr")

	root.AddCommand(
		a.newVersionCmd(),
		a.newInitCmd(),
		a.newGoodsCmd(),
		a.newMerchantsCmd(),
		a.newHuntersCmd(),
		a.newSalesCmd(),
		a.newPurchasesCmd(),
		a.newReturnsCmd(),
		a.newReportsCmd(),
	)
	return root
}

// Run executes the command line args and returns the exit code. The store
// is detached before Run returns, whatever the command's outcome.
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, log: zap.NewNop()}
	root := a.rootCmd()
	root.SetArgs(args)

	err := root.Execute()
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return exitCode(err)
}

// Execute runs the command line of the current process and exits.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// setup loads .env, builds the logger, resolves directories, reads
// config.yaml and attaches the store unless the command opts out.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	a.log = logger.New(a.stderr, a.flags.verbose)

	var err error
	if a.configDir, err = paths.ResolveConfigDir(a.flags.configDir); err != nil {
		return sysErrf("resolve config dir: %w", err)
	}
	v, err := loadConfig(a.configDir.Path)
	if err != nil {
		return err
	}
	if a.dataDir, err = paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir)); err != nil {
		return sysErrf("resolve data dir: %w", err)
	}
	a.config = types.Config{
		DataDir: a.dataDir.Path,
		File:    v.GetString(cfgKeyFile),
		Sync:    v.GetString(cfgKeySync),
	}
	a.log.Debug("directories resolved",
		zap.String("config_dir", a.configDir.Path),
		zap.String("config_source", a.configDir.Source),
		zap.String("data_dir", a.dataDir.Path),
		zap.String("data_source", a.dataDir.Source))

	if cmd.Annotations[annotationNoStore] == "true" {
		return nil
	}
	return a.attach()
}

// attach opens the store and the ledger over it.
func (a *app) attach() error {
	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	s := jsonstore.NewStore(logger.Named(a.log, "jsonstore"))
	if err := s.Attach(a.config); err != nil {
		return sysErrf("open %s: %w", a.config.DocumentPath(), err)
	}
	a.store = s
	a.ledger = ledger.New(s, ledger.WithLogger(logger.Named(a.log, "ledger")))
	return nil
}

// close detaches the store, reporting a final write failure as a system
// error.
func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Detach()
	if n := a.store.DroppedErrors(); n > 0 {
		a.log.Warn("persistence errors were not delivered", zap.Int64("dropped", n))
	}
	a.store = nil
	if err != nil {
		return sysErrf("save %s: %w", a.config.DocumentPath(), err)
	}
	return nil
}
