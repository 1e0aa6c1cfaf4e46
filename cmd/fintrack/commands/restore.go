package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <dump.enc>",
		Short: "Replace the live ledger from a sealed dump (destructive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Restore.FromSealedDump(args[0]); err != nil {
				return err
			}
			fmt.Println(color.GreenString("Restored ledger from %s and regenerated artifacts.", args[0]))
			return nil
		},
	}
}
