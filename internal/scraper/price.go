package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var priceRegex = regexp.MustCompile(`(\d+\.\d+|\d+)`)

// ExtractPrice pulls a numeric price out of scraped text. Currency symbols
// and thousands separators are stripped before matching, so inputs like
// "$1,299.99" and "Now $5.49" both work.
func ExtractPrice(text string) (float64, error) {
	cleaned := strings.ReplaceAll(text, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")

	match := priceRegex.FindString(cleaned)
	if match == "" {
		return 0, fmt.Errorf("no price found in %q", text)
	}

	price, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q: %w", match, err)
	}
	return price, nil
}
