package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fintrack/internal/services/records"
)

func addCmd() *cobra.Command {
	var e records.Entry

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save today's entry (note auto-tagged, sensitive fields encrypted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := appCtx.Records.Save(e)
			if err != nil {
				return err
			}
			fmt.Println(color.GreenString("Saved %s: income %d, spent %d, balance %d", r.Date, r.TotalIncome, r.TotalSpent, r.Balance))
			if r.Tags != "" {
				fmt.Printf("Tags: %s\n", r.Tags)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&e.Pocket, "pocket", 0, "pocket money")
	cmd.Flags().IntVar(&e.Extra, "extra", 0, "extra income")
	cmd.Flags().IntVar(&e.Food, "food", 0, "food & drinks spending")
	cmd.Flags().IntVar(&e.Other, "other", 0, "other spending")
	cmd.Flags().StringVar(&e.Note, "note", "", "free-text note (stored encrypted)")
	return cmd
}
