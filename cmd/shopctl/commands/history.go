package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// historyCmd prints a customer's sales
var historyCmd = &cobra.Command{
	Use:   "history <username>",
	Short: "Print a customer's sales history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := newClient().CustomerSales(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(history)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "SALE\tDATE\tITEM\tPAID\tCURRENT PRICE")
		for _, s := range history {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				s.SaleID,
				s.SaleDate.Format(time.RFC3339),
				s.ItemName,
				s.PriceAtSale,
				s.PricePerItem,
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
