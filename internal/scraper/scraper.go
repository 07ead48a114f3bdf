// Package scraper fetches product pages and extracts prices from them.
package scraper

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/90.0.4430.212 Safari/537.36"

// DefaultSelectors is tried in order until one yields a parseable price.
// The later entries are retailer-specific.
var DefaultSelectors = []string{
	`[itemprop="price"]`,
	`.price-characteristic`,
	`[data-automation-id="price-value"]`,
	`.prod-PriceSection [aria-hidden="false"]`,
	`span.price-group`,
	`[data-testid="price-wrap"] span.inline-flex span.primary`,
}

// ErrPriceNotFound is returned when the page loads but no selector matches a
// parseable price.
var ErrPriceNotFound = errors.New("price not found on page")

type Scraper struct {
	selectors   []string
	userAgent   string
	maxRetries  int
	backoffBase time.Duration
	logger      *slog.Logger

	mu          sync.Mutex
	urlBackoffs map[string]int
}

type Option func(*Scraper)

// WithSelectors replaces the default selector list.
func WithSelectors(selectors []string) Option {
	return func(s *Scraper) { s.selectors = selectors }
}

// WithUserAgent overrides the User-Agent header sent with requests.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) { s.userAgent = ua }
}

// WithMaxRetries sets the number of retries for failed requests.
func WithMaxRetries(n int) Option {
	return func(s *Scraper) { s.maxRetries = n }
}

// WithBackoffBase sets the base duration for exponential retry backoff.
func WithBackoffBase(d time.Duration) Option {
	return func(s *Scraper) { s.backoffBase = d }
}

// WithLogger sets the logger used for scrape progress.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) { s.logger = logger }
}

func New(opts ...Option) *Scraper {
	s := &Scraper{
		selectors:   DefaultSelectors,
		userAgent:   defaultUserAgent,
		maxRetries:  3,
		backoffBase: time.Second,
		logger:      slog.Default(),
		urlBackoffs: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchPrice loads the page at rawURL and returns the first price matched by
// the selector list. Failed requests are retried with exponential backoff.
func (s *Scraper) FetchPrice(rawURL string) (float64, error) {
	c := colly.NewCollector(colly.UserAgent(s.userAgent))

	var (
		price     float64
		found     bool
		scrapeErr error
	)

	for _, selector := range s.selectors {
		c.OnHTML(selector, func(e *colly.HTMLElement) {
			if found {
				return
			}
			p, err := ExtractPrice(e.Text)
			if err != nil {
				s.logger.Debug("selector matched but no price parsed",
					slog.String("selector", selector),
					slog.String("text", e.Text))
				return
			}
			s.logger.Info("found price",
				slog.String("selector", selector),
				slog.Float64("price", p))
			price = p
			found = true
		})
	}

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
		s.logger.Debug("visiting", slog.String("url", r.URL.String()))
	})

	c.OnError(func(r *colly.Response, err error) {
		s.mu.Lock()
		s.urlBackoffs[rawURL]++
		numRetries := s.urlBackoffs[rawURL]
		s.mu.Unlock()

		if numRetries > s.maxRetries {
			scrapeErr = fmt.Errorf("request failed after %d retries: %w", s.maxRetries, err)
			return
		}

		duration := time.Duration(math.Pow(2, float64(numRetries))) * s.backoffBase
		s.logger.Warn("request failed, retrying",
			slog.String("url", rawURL),
			slog.Int("status", r.StatusCode),
			slog.Duration("backoff", duration),
			slog.Any("error", err))
		time.Sleep(duration)
		if err := r.Request.Retry(); err != nil {
			scrapeErr = fmt.Errorf("retry failed: %w", err)
		}
	})

	if err := c.Visit(rawURL); err != nil && !found {
		if scrapeErr != nil {
			return 0, scrapeErr
		}
		return 0, fmt.Errorf("failed to fetch page: %w", err)
	}

	if !found {
		if scrapeErr != nil {
			return 0, scrapeErr
		}
		return 0, ErrPriceNotFound
	}
	return price, nil
}
