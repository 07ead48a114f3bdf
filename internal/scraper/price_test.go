package scraper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/scraper"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"plain dollars", "$19.99", 19.99},
		{"thousands separator", "$1,299.99", 1299.99},
		{"integer price", "$45", 45},
		{"surrounding text", "Now $5.49 (was $7.99)", 5.49},
		{"no currency symbol", "123.45", 123.45},
		{"whitespace", "  $10.00  ", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scraper.ExtractPrice(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPriceErrors(t *testing.T) {
	for _, text := range []string{"", "Out of stock", "$"} {
		t.Run(text, func(t *testing.T) {
			_, err := scraper.ExtractPrice(text)
			assert.Error(t, err)
		})
	}
}
