package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCommand() *cobra.Command {
	var (
		name  string
		email string
	)

	cmd := &cobra.Command{
		Use:   "add URL",
		Short: "Add an item to track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWatcher(cmd.Context(), configFrom(cmd))
			if err != nil {
				return err
			}

			item, err := w.Add(cmd.Context(), args[0], name, email)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Now tracking: %s (%s)\n", item.Name, item.URL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "name for the product (optional)")
	cmd.Flags().StringVar(&email, "email", "", "alert recipient for this item (overrides ALERT_TO)")

	return cmd
}
