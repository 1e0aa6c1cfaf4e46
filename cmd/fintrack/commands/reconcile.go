package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Regenerate all derived artifacts from the authoritative store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Artifacts.Reconcile(); err != nil {
				return err
			}
			fmt.Println(color.GreenString("Artifacts regenerated from the ledger."))
			return nil
		},
	}
}
