package watcher_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/models"
	"pricewatch/internal/store"
	"pricewatch/internal/watcher"
)

type recordingNotifier struct {
	calls   int
	changes []models.Change
}

func (n *recordingNotifier) Notify(ctx context.Context, changes []models.Change) error {
	n.calls++
	n.changes = changes
	return nil
}

func fixedClock() time.Time {
	return time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
}

func noRedirect(ctx context.Context, url string) (string, bool, error) {
	return "", false, nil
}

func fixedPrice(v float64) watcher.PriceFetcherFunc {
	return func(url string) (float64, error) { return v, nil }
}

func newTestWatcher(t *testing.T, fetcher watcher.PriceFetcher, opts ...watcher.Option) (*watcher.Watcher, store.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewFileStore(filepath.Join(t.TempDir(), "price_data.json"), logger)
	opts = append([]watcher.Option{
		watcher.WithRedirectFunc(noRedirect),
		watcher.WithClock(fixedClock),
		watcher.WithLogger(logger),
	}, opts...)
	return watcher.New(st, fetcher, opts...), st
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWatcher(t, fixedPrice(10))

	item, err := w.Add(ctx, "https://example.com/p/1", "Widget", "")
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Widget", item.Name)
	assert.Nil(t, item.CurrentPrice)

	items, err := w.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestAddDefaultName(t *testing.T) {
	w, _ := newTestWatcher(t, fixedPrice(10))

	item, err := w.Add(context.Background(), "https://shop.example.com/p/1", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Item from shop.example.com", item.Name)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	w, _ := newTestWatcher(t, fixedPrice(10))

	_, err := w.Add(context.Background(), "not a url", "", "")
	assert.ErrorContains(t, err, "invalid URL format")

	_, err = w.Add(context.Background(), "https://example.com/p/1", "", "not-an-email")
	assert.ErrorContains(t, err, "invalid email address")
}

func TestAddDuplicate(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWatcher(t, fixedPrice(10))

	_, err := w.Add(ctx, "https://example.com/p/1", "Widget", "")
	require.NoError(t, err)

	_, err = w.Add(ctx, "https://example.com/p/1", "Widget again", "")
	assert.ErrorIs(t, err, watcher.ErrAlreadyTracked)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWatcher(t, fixedPrice(10))

	_, err := w.Add(ctx, "https://example.com/p/1", "Widget", "")
	require.NoError(t, err)

	removed, err := w.Remove(ctx, "https://example.com/p/1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", removed.Name)

	_, err = w.Remove(ctx, "https://example.com/p/1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCheckAllFirstObservationIsSilent(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	w, st := newTestWatcher(t, fixedPrice(99.99), watcher.WithNotifier(notifier))

	_, err := w.Add(ctx, "https://example.com/p/1", "Widget", "")
	require.NoError(t, err)

	changes, err := w.CheckAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Zero(t, notifier.calls)

	got, err := st.FindByURL(ctx, "https://example.com/p/1")
	require.NoError(t, err)
	require.NotNil(t, got.CurrentPrice)
	assert.Equal(t, 99.99, *got.CurrentPrice)
	assert.Nil(t, got.PreviousPrice)
	assert.Equal(t, "2026-08-29 10:30:00", got.LastChecked)
}

func TestCheckAllDetectsPriceChange(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}

	current := 100.0
	fetcher := watcher.PriceFetcherFunc(func(url string) (float64, error) {
		return current, nil
	})
	w, st := newTestWatcher(t, fetcher, watcher.WithNotifier(notifier))

	_, err := w.Add(ctx, "https://example.com/p/1", "Widget", "")
	require.NoError(t, err)
	_, err = w.CheckAll(ctx)
	require.NoError(t, err)

	current = 80
	changes, err := w.CheckAll(ctx)
	require.NoError(t, err)

	require.Len(t, changes, 1)
	assert.Equal(t, models.ChangeTypePrice, changes[0].Type)
	assert.Equal(t, "100", changes[0].OldValue)
	assert.Equal(t, "80", changes[0].NewValue)
	assert.Equal(t, 1, notifier.calls)

	got, err := st.FindByURL(ctx, "https://example.com/p/1")
	require.NoError(t, err)
	assert.Equal(t, 80.0, *got.CurrentPrice)
	assert.Equal(t, 100.0, *got.PreviousPrice)

	// the change already rolled into previous, so the next run is quiet
	changes, err = w.CheckAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Equal(t, 1, notifier.calls)
}

func TestCheckAllFetchErrorSkipsItem(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}

	fetcher := watcher.PriceFetcherFunc(func(url string) (float64, error) {
		if url == "https://example.com/broken" {
			return 0, errors.New("price not found")
		}
		return 42, nil
	})
	w, st := newTestWatcher(t, fetcher, watcher.WithNotifier(notifier))

	_, err := w.Add(ctx, "https://example.com/broken", "Broken", "")
	require.NoError(t, err)
	_, err = w.Add(ctx, "https://example.com/fine", "Fine", "")
	require.NoError(t, err)

	changes, err := w.CheckAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, changes)

	broken, err := st.FindByURL(ctx, "https://example.com/broken")
	require.NoError(t, err)
	assert.Nil(t, broken.CurrentPrice)
	assert.Empty(t, broken.LastChecked)

	fine, err := st.FindByURL(ctx, "https://example.com/fine")
	require.NoError(t, err)
	require.NotNil(t, fine.CurrentPrice)
	assert.Equal(t, 42.0, *fine.CurrentPrice)
}

func TestCheckAllFollowsRedirect(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}

	redirect := func(ctx context.Context, url string) (string, bool, error) {
		if url == "https://example.com/old" {
			return "https://example.com/new", true, nil
		}
		return "", false, nil
	}
	w, st := newTestWatcher(t, fixedPrice(10),
		watcher.WithNotifier(notifier), watcher.WithRedirectFunc(redirect))

	_, err := w.Add(ctx, "https://example.com/old", "Widget", "")
	require.NoError(t, err)

	changes, err := w.CheckAll(ctx)
	require.NoError(t, err)

	require.Len(t, changes, 1)
	assert.Equal(t, models.ChangeTypeURL, changes[0].Type)
	assert.Equal(t, "https://example.com/old", changes[0].OldValue)
	assert.Equal(t, "https://example.com/new", changes[0].NewValue)
	assert.Equal(t, 1, notifier.calls)

	got, err := st.FindByURL(ctx, "https://example.com/new")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/old", got.PreviousURL)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "100", watcher.FormatPrice(100))
	assert.Equal(t, "99.99", watcher.FormatPrice(99.99))
	assert.Equal(t, "5.4", watcher.FormatPrice(5.4))
}
