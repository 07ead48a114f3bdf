package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove URL",
		Short: "Remove an item from tracking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWatcher(cmd.Context(), configFrom(cmd))
			if err != nil {
				return err
			}

			item, err := w.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s (%s)\n", item.Name, item.URL)
			return nil
		},
	}
}
