package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check prices for all tracked items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWatcher(cmd.Context(), configFrom(cmd))
			if err != nil {
				return err
			}

			changes, err := w.CheckAll(cmd.Context())
			if err != nil {
				return err
			}

			if len(changes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No price or URL changes detected")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Detected %d change(s):\n", len(changes))
			for _, c := range changes {
				fmt.Fprintf(cmd.OutOrStdout(), "- [%s] %s: %s -> %s\n",
					c.Type, c.Name, c.OldValue, c.NewValue)
			}
			return nil
		},
	}
}
