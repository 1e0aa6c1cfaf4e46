package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write a sealed bundle of all current sealed artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := appCtx.Artifacts.SecureBundle()
			if err != nil {
				return err
			}
			fmt.Println(color.GreenString("Secure bundle written to %s", path))
			return nil
		},
	}
}
