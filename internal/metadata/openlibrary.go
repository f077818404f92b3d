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
	openLibraryService = "openlibrary"
	openLibraryBaseURL = "https://openlibrary.org"
	openLibraryFields  = "key,title,author_name,language"
)

type openLibrarySearchResult struct {
	NumFound int                    `json:"numFound"`
	Docs     []openLibrarySearchDoc `json:"docs"`
}

type openLibrarySearchDoc struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	Language   []string `json:"language"`
}

// OpenLibraryClient fetches the languages of a book from the OpenLibrary search API.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[entities.Languages]
}

// NewOpenLibraryClient creates a new OpenLibrary API client with rate limiting.
func NewOpenLibraryClient(cfg ClientConfig) *OpenLibraryClient {
	cfg = cfg.withDefaults(openLibraryBaseURL)
	return &OpenLibraryClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		limiter:    resilience.NewLimiter(cfg.RatePerSecond),
		breaker:    resilience.NewBreaker[entities.Languages](openLibraryService, cfg.Breaker, isUpstreamFailure),
	}
}

// Languages returns the language codes of the first search hit for isbn.
// A hit without languages yields the missing variant.
func (c *OpenLibraryClient) Languages(ctx context.Context, isbn string) (entities.Languages, error) {
	langs, err := c.breaker.Execute(func() (entities.Languages, error) {
		return c.search(ctx, isbn)
	})
	if resilience.IsOpen(err) {
		return entities.Languages{}, fmt.Errorf("%w: %s: %w", ErrUpstreamUnavailable, openLibraryService, err)
	}
	return langs, err
}

func (c *OpenLibraryClient) search(ctx context.Context, isbn string) (entities.Languages, error) {
	params := url.Values{}
	params.Set("q", queryISBN(isbn))
	params.Set("fields", openLibraryFields)

	var result openLibrarySearchResult
	if err := getJSON(ctx, c.httpClient, c.limiter, openLibraryService, c.baseURL+"/search.json?"+params.Encode(), &result); err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return entities.Languages{}, fmt.Errorf("%w: %w", ErrNoLanguageRecord, err)
		}
		return entities.Languages{}, err
	}

	if len(result.Docs) == 0 {
		return entities.Languages{}, fmt.Errorf("%w: no documents for %s", ErrNoLanguageRecord, isbn)
	}
	return entities.NewLanguages(result.Docs[0].Language...), nil
}
