package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/metrics"
)

// SummaryRefresher regenerates book summaries.
type SummaryRefresher interface {
	RefreshSummary(ctx context.Context, id string) (bool, error)
	BooksMissingSummary(ctx context.Context) ([]string, error)
}

// RefreshSummaryQueue is the queue name of summary refresh tasks.
const RefreshSummaryQueue = "refresh_summary"

// RefreshSummaryTask asks Gemini again for one book's summary.
type RefreshSummaryTask struct {
	BookID string `json:"book_id"`
}

// Config returns the queue configuration for summary refresh tasks.
func (t RefreshSummaryTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        RefreshSummaryQueue,
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RefreshSummaryProcessor creates a processor function for RefreshSummaryTask.
// A book deleted before the task runs is not an error.
func RefreshSummaryProcessor(refresher SummaryRefresher) backlite.QueueProcessor[RefreshSummaryTask] {
	return func(ctx context.Context, task RefreshSummaryTask) error {
		if refresher == nil {
			return fmt.Errorf("summary refresher not configured")
		}

		updated, err := refresher.RefreshSummary(ctx, task.BookID)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			logging.Info().Str("book_id", task.BookID).Msg("book gone before summary refresh")
			return nil
		case err != nil:
			metrics.SummaryRefreshes.WithLabelValues("failed").Inc()
			return fmt.Errorf("refresh summary of book %s: %w", task.BookID, err)
		case updated:
			metrics.SummaryRefreshes.WithLabelValues("updated").Inc()
			logging.Info().Str("book_id", task.BookID).Msg("summary refreshed")
		default:
			metrics.SummaryRefreshes.WithLabelValues("missing").Inc()
			logging.Info().Str("book_id", task.BookID).Msg("summary still unavailable")
		}
		return nil
	}
}

// NewRefreshSummaryQueue creates a backlite queue for summary refresh tasks.
func NewRefreshSummaryQueue(refresher SummaryRefresher) backlite.Queue {
	return backlite.NewQueue(RefreshSummaryProcessor(refresher))
}
