package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

var redirectStatuses = map[int]bool{
	http.StatusMovedPermanently:  true,
	http.StatusFound:             true,
	http.StatusSeeOther:          true,
	http.StatusTemporaryRedirect: true,
	http.StatusPermanentRedirect: true,
}

// CheckRedirect issues a HEAD request without following redirects and reports
// whether the URL has moved. The returned string is the Location target when
// moved is true.
func CheckRedirect(ctx context.Context, rawURL string) (string, bool, error) {
	client := &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("failed to check URL redirection: %w", err)
	}
	defer resp.Body.Close()

	if !redirectStatuses[resp.StatusCode] {
		return "", false, nil
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", false, nil
	}
	if loc, err := resp.Location(); err == nil {
		location = loc.String()
	}
	return location, true, nil
}
