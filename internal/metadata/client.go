package metadata

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/mrlokans/bookshelf/internal/metrics"
	"github.com/mrlokans/bookshelf/internal/resilience"
)

const userAgent = "Bookshelf/1.0 (https://github.com/mrlokans/bookshelf)"

// ClientConfig is shared by the upstream clients.
type ClientConfig struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64
	Breaker       resilience.BreakerConfig
}

func (c ClientConfig) withDefaults(baseURL string) ClientConfig {
	if c.BaseURL == "" {
		c.BaseURL = baseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	return c
}

// getJSON performs a rate-limited GET and decodes a 200 response into out.
// Transport and decoding failures wrap ErrUpstreamUnavailable; other statuses return *StatusError.
func getJSON(ctx context.Context, hc *http.Client, limiter *rate.Limiter, service, url string, out any) (err error) {
	start := time.Now()
	defer func() { metrics.RecordUpstreamRequest(service, err, time.Since(start)) }()

	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s rate limit wait: %w", ErrUpstreamUnavailable, service, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUpstreamUnavailable, service, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Service: service, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %w", ErrUpstreamUnavailable, service, err)
	}
	return nil
}

// queryISBN strips the separators people commonly type into an ISBN.
func queryISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")
	return strings.TrimSpace(isbn)
}
