package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Snapshot all artifact categories into the backup set now",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx.Artifacts.Backup()
			fmt.Println(color.GreenString("Backup pass complete (per-category failures, if any, were logged)."))
			return nil
		},
	}
}
