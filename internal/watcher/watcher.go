// Package watcher implements the price tracking core: adding and removing
// items, checking their prices, and recording changes across runs.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"pricewatch/internal/models"
	"pricewatch/internal/notify"
	"pricewatch/internal/scraper"
	"pricewatch/internal/store"
)

// ErrAlreadyTracked is returned by Add when the URL is already being watched.
var ErrAlreadyTracked = errors.New("item already being tracked")

// PriceFetcher retrieves the current price for a product URL.
type PriceFetcher interface {
	FetchPrice(url string) (float64, error)
}

// PriceFetcherFunc adapts a function to the PriceFetcher interface.
type PriceFetcherFunc func(url string) (float64, error)

func (f PriceFetcherFunc) FetchPrice(url string) (float64, error) { return f(url) }

// RedirectFunc reports whether a URL has moved and where to.
type RedirectFunc func(ctx context.Context, url string) (string, bool, error)

type Watcher struct {
	store    store.Store
	fetcher  PriceFetcher
	notifier notify.Notifier
	redirect RedirectFunc
	validate *validator.Validate
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Watcher)

// WithNotifier enables change notifications. A nil notifier disables them.
func WithNotifier(n notify.Notifier) Option {
	return func(w *Watcher) { w.notifier = n }
}

// WithRedirectFunc overrides the redirect detection used during checks.
func WithRedirectFunc(f RedirectFunc) Option {
	return func(w *Watcher) { w.redirect = f }
}

// WithClock overrides the time source for timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Watcher) { w.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

func New(s store.Store, fetcher PriceFetcher, opts ...Option) *Watcher {
	w := &Watcher{
		store:    s,
		fetcher:  fetcher,
		redirect: scraper.CheckRedirect,
		validate: validator.New(),
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Add starts tracking a new product URL. The name defaults to
// "Item from <host>" and email optionally overrides the alert recipient for
// this item.
func (w *Watcher) Add(ctx context.Context, rawURL, name, email string) (*models.Item, error) {
	if err := w.validate.Var(rawURL, "required,url"); err != nil {
		return nil, fmt.Errorf("invalid URL format: %s", rawURL)
	}
	if email != "" {
		if err := w.validate.Var(email, "email"); err != nil {
			return nil, fmt.Errorf("invalid email address: %s", email)
		}
	}

	if _, err := w.store.FindByURL(ctx, rawURL); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyTracked, rawURL)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if name == "" {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("invalid URL format: %s", rawURL)
		}
		name = "Item from " + parsed.Host
	}

	item := models.Item{
		ID:    uuid.New().String(),
		Name:  name,
		URL:   rawURL,
		Email: email,
	}
	if err := w.store.Put(ctx, item); err != nil {
		return nil, err
	}

	w.logger.Info("added new item to track",
		slog.String("name", item.Name), slog.String("url", item.URL))
	return &item, nil
}

// Remove stops tracking the given URL.
func (w *Watcher) Remove(ctx context.Context, rawURL string) (*models.Item, error) {
	item, err := w.store.FindByURL(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if err := w.store.Delete(ctx, item.ID); err != nil {
		return nil, err
	}

	w.logger.Info("removed item",
		slog.String("name", item.Name), slog.String("url", item.URL))
	return item, nil
}

// Items returns all tracked items.
func (w *Watcher) Items(ctx context.Context) ([]models.Item, error) {
	return w.store.List(ctx)
}

// CheckItem checks one item in place and returns the changes it detected.
// The item's URL, prices, and LastChecked are updated as a side effect.
func (w *Watcher) CheckItem(ctx context.Context, item *models.Item) []models.Change {
	var changes []models.Change
	timestamp := w.now().Format(models.TimeFormat)

	// A permanent redirect usually means the product moved; track the new
	// location so the next run checks the right page.
	newURL, moved, err := w.redirect(ctx, item.URL)
	if err != nil {
		w.logger.Error("error checking URL redirection",
			slog.String("url", item.URL), slog.Any("error", err))
	} else if moved {
		w.logger.Warn("URL has changed",
			slog.String("old", item.URL), slog.String("new", newURL))
		changes = append(changes, models.Change{
			Name:      item.Name,
			URL:       item.URL,
			Type:      models.ChangeTypeURL,
			OldValue:  item.URL,
			NewValue:  newURL,
			Timestamp: timestamp,
		})
		item.PreviousURL = item.URL
		item.URL = newURL
	}

	price, err := w.fetcher.FetchPrice(item.URL)
	if err != nil {
		w.logger.Warn("could not retrieve price",
			slog.String("name", item.Name), slog.Any("error", err))
		return changes
	}

	item.LastChecked = timestamp

	switch {
	case item.CurrentPrice == nil:
		w.logger.Info("initial price recorded",
			slog.String("name", item.Name), slog.Float64("price", price))
		item.CurrentPrice = &price

	case price != *item.CurrentPrice:
		w.logger.Info("price change detected",
			slog.String("name", item.Name),
			slog.Float64("old", *item.CurrentPrice),
			slog.Float64("new", price))
		changes = append(changes, models.Change{
			Name:      item.Name,
			URL:       item.URL,
			Type:      models.ChangeTypePrice,
			OldValue:  FormatPrice(*item.CurrentPrice),
			NewValue:  FormatPrice(price),
			Timestamp: timestamp,
		})
		item.PreviousPrice = item.CurrentPrice
		item.CurrentPrice = &price

	default:
		w.logger.Info("no price change",
			slog.String("name", item.Name), slog.Float64("price", price))
	}

	return changes
}

// CheckAll checks every tracked item, persists updated state, and sends one
// notification covering all detected changes. A failure on one item never
// aborts the run.
func (w *Watcher) CheckAll(ctx context.Context) ([]models.Change, error) {
	items, err := w.store.List(ctx)
	if err != nil {
		return nil, err
	}

	w.logger.Info("starting price check", slog.Int("items", len(items)))

	var changes []models.Change
	for i := range items {
		changes = append(changes, w.CheckItem(ctx, &items[i])...)
		if err := w.store.Put(ctx, items[i]); err != nil {
			w.logger.Error("failed to persist item",
				slog.String("name", items[i].Name), slog.Any("error", err))
		}
	}

	if len(changes) == 0 {
		w.logger.Info("no price or URL changes detected")
		return nil, nil
	}

	w.logger.Info("detected changes", slog.Int("count", len(changes)))
	if w.notifier != nil {
		if err := w.notifier.Notify(ctx, changes); err != nil {
			w.logger.Error("failed to send notification", slog.Any("error", err))
		}
	} else {
		w.logger.Warn("email configuration not provided, skipping notification")
	}
	return changes, nil
}

// FormatPrice renders a price the way it appears in alerts, without trailing
// zeros.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
