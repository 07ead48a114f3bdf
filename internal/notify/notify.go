// Package notify renders and delivers price change alerts.
package notify

import (
	"context"

	"pricewatch/internal/models"
)

// Notifier delivers an alert covering a batch of detected changes.
type Notifier interface {
	Notify(ctx context.Context, changes []models.Change) error
}
