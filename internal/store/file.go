package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"

	"pricewatch/internal/models"
)

// FileStore keeps all items in a single JSON document on disk, keyed by URL.
// A missing file means no items yet; a corrupt file is treated as empty so a
// bad write never wedges the watcher.
type FileStore struct {
	path   string
	logger *slog.Logger
}

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the location of the backing data file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) load() (map[string]models.Item, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("no previous data file found, starting fresh", slog.String("path", s.path))
		return map[string]models.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	items := map[string]models.Item{}
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("could not parse data file, starting with empty data",
			slog.String("path", s.path), slog.Any("error", err))
		return map[string]models.Item{}, nil
	}
	return items, nil
}

func (s *FileStore) save(items map[string]models.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]models.Item, error) {
	byURL, err := s.load()
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(byURL))
	for _, item := range byURL {
		items = append(items, item)
	}
	// map iteration order is random; keep listings stable
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *FileStore) Put(ctx context.Context, item models.Item) error {
	byURL, err := s.load()
	if err != nil {
		return err
	}

	// The item's URL may have changed since it was stored (redirects), so
	// drop any entry carrying the same ID before re-keying.
	for url, existing := range byURL {
		if existing.ID == item.ID {
			delete(byURL, url)
		}
	}
	byURL[item.URL] = item
	return s.save(byURL)
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	byURL, err := s.load()
	if err != nil {
		return err
	}

	for url, existing := range byURL {
		if existing.ID == id {
			delete(byURL, url)
			return s.save(byURL)
		}
	}
	return ErrNotFound
}

func (s *FileStore) FindByURL(ctx context.Context, url string) (*models.Item, error) {
	byURL, err := s.load()
	if err != nil {
		return nil, err
	}

	if item, ok := byURL[url]; ok {
		return &item, nil
	}
	return nil, ErrNotFound
}
