package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"pricewatch/internal/config"
	"pricewatch/internal/watcher"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check prices continuously on a cron schedule",
		Long: `watch runs the price check on a cron schedule (default every 30
minutes) until interrupted. When the file store is in use, edits to the data
file trigger an immediate off-schedule check of any newly added items.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd)
			logger := slog.Default()

			w, err := newWatcher(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			job := cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).
				Then(cron.FuncJob(func() {
					if _, err := w.CheckAll(ctx); err != nil {
						logger.Error("check failed", slog.Any("error", err))
					}
				}))

			c := cron.New()
			if _, err := c.AddJob(cfg.Schedule, job); err != nil {
				return fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
			}

			if cfg.Store == config.StoreFile {
				cancel, err := watchDataFile(ctx, cfg.DataFile, w, job, logger)
				if err != nil {
					logger.Warn("data file watching disabled", slog.Any("error", err))
				} else {
					defer cancel()
				}
			}

			logger.Info("watching", slog.String("schedule", cfg.Schedule))
			c.Start()
			<-ctx.Done()

			logger.Info("shutting down")
			<-c.Stop().Done()
			return nil
		},
	}

	cmd.Flags().String("schedule", "*/30 * * * *", "cron expression for scheduled checks")

	return cmd
}

// watchDataFile triggers an immediate check when the set of tracked URLs in
// the data file changes on disk. Events caused by the watcher's own state
// writes leave the URL set unchanged and are ignored.
func watchDataFile(ctx context.Context, path string, w *watcher.Watcher, job cron.Job, logger *slog.Logger) (func(), error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors and atomic writers replace the file,
	// which would invalidate a watch on the file itself.
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	lastSet, _ := urlSet(ctx, w)

	var debounce *time.Timer
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != filepath.Base(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, func() {
					current, err := urlSet(ctx, w)
					if err != nil {
						logger.Warn("failed to reload data file", slog.Any("error", err))
						return
					}
					if current == lastSet {
						return
					}
					lastSet = current
					logger.Info("data file changed, running check", slog.String("path", path))
					job.Run()
				})
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("data file watch error", slog.Any("error", err))
			}
		}
	}()

	return func() { fw.Close() }, nil
}

func urlSet(ctx context.Context, w *watcher.Watcher) (string, error) {
	items, err := w.Items(ctx)
	if err != nil {
		return "", err
	}
	urls := make([]string, 0, len(items))
	for _, item := range items {
		urls = append(urls, item.URL)
	}
	sort.Strings(urls)
	return strings.Join(urls, "\n"), nil
}
