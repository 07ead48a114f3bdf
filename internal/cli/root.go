// Package cli implements the cobra command tree for pricewatch.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pricewatch/internal/config"
	"pricewatch/internal/logging"
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

type cfgCtxKey struct{}

// configFrom extracts the loaded config from the command context.
func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(cfgCtxKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// Execute builds the command tree, runs it, and returns the exit code.
func Execute() int {
	cmd := NewRootCommand()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "pricewatch",
		Short: "Track product prices and get alerted on changes",
		Long: `pricewatch tracks the prices of products online. It scrapes each
tracked URL, compares the current price against the last observed one, and
sends an email alert when a price or product URL changes.

State is kept in a local JSON file by default; S3 and DynamoDB backends are
available for runs on ephemeral infrastructure.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// .env files are a convenience for local runs; CI passes
			// real environment variables.
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return &ExitError{Code: 2, Err: fmt.Errorf("loading .env: %w", err)}
			}

			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return &ExitError{Code: 2, Err: err}
			}

			logger := logging.Setup(cfg)

			ctx := context.WithValue(cmd.Context(), cfgCtxKey{}, cfg)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("store", cfg.Store),
				slog.Bool("emailEnabled", cfg.EmailEnabled()),
			)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .pricewatch.yaml)")
	pf.String("data-file", "price_data.json", "path of the JSON state file (file store)")
	pf.String("store", "file", "state backend: file, s3, dynamodb")
	pf.String("s3-bucket", "", "bucket holding the state document (s3 store)")
	pf.String("s3-key", "price_data.json", "object key of the state document (s3 store)")
	pf.String("dynamodb-table", "", "table holding tracked items (dynamodb store)")
	pf.String("smtp-host", "smtp.gmail.com", "SMTP server for alert emails")
	pf.Int("smtp-port", 465, "SMTP port (implicit TLS)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Err: err}
	})

	cmd.AddCommand(
		newAddCommand(),
		newRemoveCommand(),
		newListCommand(),
		newCheckCommand(),
		newWatchCommand(),
		newVersionCommand(),
	)

	return cmd
}
