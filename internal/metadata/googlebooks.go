package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/resilience"
)

const (
	googleBooksService = "googlebooks"
	googleBooksBaseURL = "https://www.googleapis.com/books/v1"
)

// Volume is the part of a Google Books volume the catalog uses.
// Nil pointers mark fields the volume does not carry.
type Volume struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Publisher     *string  `json:"publisher"`
	PublishedDate *string  `json:"publishedDate"`
}

// Metadata converts the volume, marking absent fields as missing.
func (v *Volume) Metadata() entities.Metadata {
	return entities.Metadata{
		Authors:       entities.NewAuthors(v.Authors...),
		Publisher:     optionalText(v.Publisher),
		PublishedDate: optionalText(v.PublishedDate),
	}
}

func optionalText(s *string) entities.Text {
	if s == nil {
		return entities.MissingText()
	}
	return entities.SomeText(*s)
}

type googleBooksResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo Volume `json:"volumeInfo"`
	} `json:"items"`
}

// GoogleBooksClient looks up volumes by ISBN.
type GoogleBooksClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*Volume]
}

// NewGoogleBooksClient creates a client; apiKey may be empty for anonymous quota.
func NewGoogleBooksClient(apiKey string, cfg ClientConfig) *GoogleBooksClient {
	cfg = cfg.withDefaults(googleBooksBaseURL)
	return &GoogleBooksClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     apiKey,
		limiter:    resilience.NewLimiter(cfg.RatePerSecond),
		breaker:    resilience.NewBreaker[*Volume](googleBooksService, cfg.Breaker, isUpstreamFailure),
	}
}

// Volume returns the first volume matching isbn.
func (c *GoogleBooksClient) Volume(ctx context.Context, isbn string) (*Volume, error) {
	v, err := c.breaker.Execute(func() (*Volume, error) {
		return c.fetch(ctx, isbn)
	})
	if resilience.IsOpen(err) {
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstreamUnavailable, googleBooksService, err)
	}
	return v, err
}

func (c *GoogleBooksClient) fetch(ctx context.Context, isbn string) (*Volume, error) {
	params := url.Values{}
	params.Set("q", "isbn:"+queryISBN(isbn))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	var result googleBooksResponse
	err := getJSON(ctx, c.httpClient, c.limiter, googleBooksService, c.baseURL+"/volumes?"+params.Encode(), &result)
	var se *StatusError
	if errors.As(err, &se) {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, se)
	}
	if err != nil {
		return nil, err
	}

	if len(result.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrISBNNotFound, isbn)
	}
	return &result.Items[0].VolumeInfo, nil
}
