package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recorded entries with decrypted notes and tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := appCtx.Records.List()
			if err != nil {
				return err
			}
			if last > 0 && len(rows) > last {
				rows = rows[len(rows)-last:]
			}
			if len(rows) == 0 {
				fmt.Println("No entries yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tINCOME\tSPENT\tBALANCE\tNOTE\tTAGS")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
					r.Date, r.TotalIncome, r.TotalSpent, r.Balance, r.Note, r.Tags)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&last, "last", 0, "show only the last N entries")
	return cmd
}
