// Package summary asks Gemini for a short summary of a book.
package summary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/metrics"
	"github.com/mrlokans/bookshelf/internal/resilience"
)

const (
	geminiService = "gemini"
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	DefaultModel = "gemini-1.5-flash"
)

// ErrNoAPIKey is returned when no Gemini key is configured.
var ErrNoAPIKey = errors.New("gemini API key not configured")

// ErrEmptyResponse is returned when Gemini answers without any text.
var ErrEmptyResponse = errors.New("gemini returned no text")

// Prompt builds the summary request for a book.
func Prompt(title, authors string) string {
	return fmt.Sprintf(`Summarize the book "%s" by %s in 5 sentences or less. If you dont know the book, return the word "missing" and only this word`, title, authors)
}

// Config configures a GeminiClient.
type Config struct {
	APIKey        string
	Model         string
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64
	Breaker       resilience.BreakerConfig
}

// GeminiClient calls the generateContent endpoint of the Gemini API.
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[string]
}

func NewGeminiClient(cfg Config) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = geminiBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GeminiClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		limiter:    resilience.NewLimiter(cfg.RatePerSecond),
		breaker:    resilience.NewBreaker[string](geminiService, cfg.Breaker, nil),
	}
}

// Summarize returns the summary, or the missing variant when Gemini fails or does not know the book.
func (c *GeminiClient) Summarize(ctx context.Context, title, authors string) entities.Text {
	text, err := c.Generate(ctx, Prompt(title, authors))
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("title", title).Msg("summary unavailable")
		return entities.MissingText()
	}
	return entities.ParseText(strings.TrimSpace(text))
}

// Generate sends prompt and returns the text of the first candidate.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}
	return c.breaker.Execute(func() (string, error) {
		return c.generate(ctx, prompt)
	})
}

type generateRequest struct {
	Contents       []content       `json:"contents"`
	SafetySettings []safetySetting `json:"safetySettings"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Book summaries routinely mention violence or abuse; nothing is filtered.
var unblockedSafety = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (text string, err error) {
	start := time.Now()
	defer func() { metrics.RecordUpstreamRequest(geminiService, err, time.Since(start)) }()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Contents:       []content{{Parts: []part{{Text: prompt}}}},
		SafetySettings: unblockedSafety,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	var sb strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
