package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pricewatch/internal/watcher"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tracked items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWatcher(cmd.Context(), configFrom(cmd))
			if err != nil {
				return err
			}

			items, err := w.Items(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No items currently being tracked")
				return nil
			}

			fmt.Fprintln(out, "Tracked Items:")
			for i, item := range items {
				fmt.Fprintf(out, "%d. %s\n", i+1, item.Name)
				fmt.Fprintf(out, "   URL: %s\n", item.URL)

				price := "Not checked yet"
				if item.CurrentPrice != nil {
					price = "$" + watcher.FormatPrice(*item.CurrentPrice)
				}
				fmt.Fprintf(out, "   Current Price: %s\n", price)

				checked := item.LastChecked
				if checked == "" {
					checked = "Never"
				}
				fmt.Fprintf(out, "   Last Checked: %s\n", checked)
			}
			return nil
		},
	}
}
