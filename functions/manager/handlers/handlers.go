// Package handlers implements the manager API routes.
package handlers

import (
	"context"
	"os"

	"github.com/go-playground/validator/v10"

	"pricewatch/internal/store"
)

// Validate is shared across handlers; validator instances cache struct
// metadata.
var Validate = validator.New()

func newStore(ctx context.Context) (store.Store, error) {
	return store.NewDynamoDBStore(ctx, os.Getenv("DYNAMODB_TABLE"))
}
