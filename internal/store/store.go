// Package store persists tracked items between runs.
package store

import (
	"context"
	"errors"

	"pricewatch/internal/models"
)

// ErrNotFound is returned when a lookup matches no tracked item.
var ErrNotFound = errors.New("item not found")

// Store is the persistence backend for tracked items. Implementations:
// file-backed JSON (default), the same document in S3, and DynamoDB.
type Store interface {
	// List returns all tracked items.
	List(ctx context.Context) ([]models.Item, error)
	// Put inserts or replaces an item, keyed by ID.
	Put(ctx context.Context, item models.Item) error
	// Delete removes the item with the given ID. Deleting an unknown ID
	// returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	// FindByURL returns the item tracking the given URL, or ErrNotFound.
	FindByURL(ctx context.Context, url string) (*models.Item, error)
}
