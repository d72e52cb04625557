// Package cmd wires the swaptrade ledger core into an operator CLI:
// genesis initialization, invariant audits and a metrics/state endpoint.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/swaptrade/swaptrade/internal/history"
	"github.com/swaptrade/swaptrade/x/swap/keeper"
)

const (
	flagHome = "home"

	defaultDBBackend  = "goleveldb"
	defaultListenAddr = ":26690"
	stateDBName       = "state"
	historyDBFile     = "trades.db"
)

// NewRootCmd builds the swaptraded command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "swaptraded",
		Short: "swaptrade ledger core daemon",
		Long: `swaptraded operates a swaptrade ledger state database:
initialize genesis, audit the ledger invariants, or serve metrics
and a read-only state summary.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			home, err := cmd.Flags().GetString(flagHome)
			if err != nil {
				return err
			}
			return loadConfig(home)
		},
	}

	registerHomeFlag(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newInitCmd(),
		newAuditCmd(),
		newServeCmd(),
	)
	return rootCmd
}

// loadConfig reads an optional config.yaml from the home directory.
// Missing files are fine; defaults apply.
func loadConfig(home string) error {
	viper.SetDefault("db_backend", defaultDBBackend)
	viper.SetDefault("listen_addr", defaultListenAddr)
	viper.SetDefault("history_enabled", true)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func registerHomeFlag(fs *pflag.FlagSet) {
	defaultHome, _ := os.UserHomeDir()
	fs.String(flagHome, filepath.Join(defaultHome, ".swaptraded"), "node home directory")
}

func homeDir(cmd *cobra.Command) (string, error) {
	return cmd.Flags().GetString(flagHome)
}

// openKeeper opens the state database under home and builds a keeper over
// it. The returned closer releases the database and the optional history
// store.
func openKeeper(home string, logger log.Logger) (*keeper.Keeper, func(), error) {
	backend := dbm.BackendType(cast.ToString(viper.Get("db_backend")))
	db, err := dbm.NewDB(stateDBName, backend, filepath.Join(home, "data"))
	if err != nil {
		return nil, nil, fmt.Errorf("open state db: %w", err)
	}

	opts := []keeper.Option{}
	var hist *history.Store
	if cast.ToBool(viper.Get("history_enabled")) {
		hist, err = history.Open(filepath.Join(home, "data", historyDBFile))
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		opts = append(opts, keeper.WithHistory(hist))
	}

	k := keeper.NewKeeper(db, logger, opts...)
	closer := func() {
		if hist != nil {
			hist.Close()
		}
		db.Close()
	}
	return k, closer, nil
}

func newLogger() log.Logger {
	return log.NewLogger(os.Stderr)
}
