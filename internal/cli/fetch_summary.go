package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/resilience"
	"github.com/mrlokans/bookshelf/internal/summary"
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FetchSummaryCommand asks Gemini for the summary of a single book and prints it.
type FetchSummaryCommand struct {
	Title   string
	Authors string
	Model   string
	Timeout time.Duration

	// Generator overrides the Gemini client built from configuration.
	Generator Generator
	Out       io.Writer
}

func NewFetchSummaryCommand() *FetchSummaryCommand {
	return &FetchSummaryCommand{Out: os.Stdout}
}

func (cmd *FetchSummaryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("fetch-summary", flag.ContinueOnError)

	fs.StringVar(&cmd.Title, "title", "", "Book title (required)")
	fs.StringVar(&cmd.Authors, "authors", "", "Book authors, joined with \" and \" (required)")
	fs.StringVar(&cmd.Model, "model", "", "Gemini model (defaults to GEMINI_MODEL)")
	fs.DurationVar(&cmd.Timeout, "timeout", 30*time.Second, "Request timeout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s fetch-summary [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Ask Gemini for a short summary of a book. Requires GEMINI_KEY.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s fetch-summary -title 1984 -authors \"George Orwell\"\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Title == "" || cmd.Authors == "" {
		fs.Usage()
		return fmt.Errorf("title and authors are required")
	}

	return nil
}

func (cmd *FetchSummaryCommand) Run() error {
	generator := cmd.Generator
	if generator == nil {
		cfg := config.NewConfig()
		if cfg.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_KEY is not set")
		}
		model := cmd.Model
		if model == "" {
			model = cfg.Gemini.Model
		}
		generator = summary.NewGeminiClient(summary.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   model,
			BaseURL: cfg.Gemini.BaseURL,
			Timeout: cmd.Timeout,
			Breaker: resilience.DefaultBreakerConfig(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()

	text, err := generator.Generate(ctx, summary.Prompt(cmd.Title, cmd.Authors))
	if err != nil {
		fmt.Fprintf(cmd.Out, "Summary: %s\n", "missing")
		return fmt.Errorf("failed to fetch summary: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Summary: %s\n", text)
	return nil
}
