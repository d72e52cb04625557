package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swaptrade/swaptrade/x/swap/types"
)

func newInitCmd() *cobra.Command {
	var admin string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a fresh ledger state database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if admin == "" {
				return fmt.Errorf("--admin is required")
			}
			home, err := homeDir(cmd)
			if err != nil {
				return err
			}

			logger := newLogger()
			k, closer, err := openKeeper(home, logger)
			if err != nil {
				return err
			}
			defer closer()

			if k.GetVersion() != 0 {
				return fmt.Errorf("state database at %s is already initialized (version %d)", home, k.GetVersion())
			}
			if err := k.InitGenesis(types.DefaultGenesis(admin)); err != nil {
				return err
			}
			cmd.Printf("initialized ledger at %s with admin %s\n", home, admin)
			return nil
		},
	}

	cmd.Flags().StringVar(&admin, "admin", "", "admin identity for the new ledger")
	return cmd
}
