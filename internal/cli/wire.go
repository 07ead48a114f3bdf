package cli

import (
	"context"
	"fmt"
	"log/slog"

	"pricewatch/internal/config"
	"pricewatch/internal/notify"
	"pricewatch/internal/scraper"
	"pricewatch/internal/store"
	"pricewatch/internal/watcher"
)

// newStore builds the persistence backend selected by the config.
func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.Store {
	case config.StoreS3:
		return store.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Key)
	case config.StoreDynamoDB:
		return store.NewDynamoDBStore(ctx, cfg.DynamoDBTable)
	case config.StoreFile:
		return store.NewFileStore(cfg.DataFile, logger), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// newWatcher wires the store, scraper, and (when configured) the SMTP
// notifier into a watcher.
func newWatcher(ctx context.Context, cfg *config.Config) (*watcher.Watcher, error) {
	logger := slog.Default()

	st, err := newStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := []watcher.Option{watcher.WithLogger(logger)}
	if cfg.EmailEnabled() {
		mailer := notify.NewSMTPMailer(
			cfg.SMTPHost, cfg.SMTPPort,
			cfg.EmailUser, cfg.EmailPass, cfg.AlertTo,
			logger,
		)
		opts = append(opts, watcher.WithNotifier(mailer))
	}

	return watcher.New(st, scraper.New(scraper.WithLogger(logger)), opts...), nil
}
