package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/metrics"
)

// BackfillSummariesQueue is the queue name of summary backfill tasks.
const BackfillSummariesQueue = "backfill_summaries"

// BackfillSummariesTask refreshes every book whose summary is missing.
// Books are processed sequentially to stay inside the Gemini rate limit.
type BackfillSummariesTask struct{}

// Config returns the queue configuration for summary backfill tasks.
func (t BackfillSummariesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        BackfillSummariesQueue,
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     60 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// BackfillResult summarizes one backfill run.
type BackfillResult struct {
	Total   int
	Updated int
	Missing int
	Failed  int
}

// Backfill refreshes the summaries of all books that lack one.
func Backfill(ctx context.Context, refresher SummaryRefresher) (BackfillResult, error) {
	var result BackfillResult
	ids, err := refresher.BooksMissingSummary(ctx)
	if err != nil {
		return result, fmt.Errorf("list books missing a summary: %w", err)
	}
	result.Total = len(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		updated, err := refresher.RefreshSummary(ctx, id)
		switch {
		case err != nil:
			result.Failed++
			metrics.SummaryRefreshes.WithLabelValues("failed").Inc()
			logging.Warn().Err(err).Str("book_id", id).Msg("summary backfill failed for book")
		case updated:
			result.Updated++
			metrics.SummaryRefreshes.WithLabelValues("updated").Inc()
		default:
			result.Missing++
			metrics.SummaryRefreshes.WithLabelValues("missing").Inc()
		}
	}
	return result, nil
}

// BackfillSummariesProcessor creates a processor function for BackfillSummariesTask.
func BackfillSummariesProcessor(refresher SummaryRefresher) backlite.QueueProcessor[BackfillSummariesTask] {
	return func(ctx context.Context, _ BackfillSummariesTask) error {
		if refresher == nil {
			return fmt.Errorf("summary refresher not configured")
		}

		result, err := Backfill(ctx, refresher)
		if err != nil {
			return fmt.Errorf("backfill summaries: %w", err)
		}

		logging.Info().
			Int("total", result.Total).
			Int("updated", result.Updated).
			Int("missing", result.Missing).
			Int("failed", result.Failed).
			Msg("summary backfill complete")
		return nil
	}
}

// NewBackfillSummariesQueue creates a backlite queue for summary backfill tasks.
func NewBackfillSummariesQueue(refresher SummaryRefresher) backlite.Queue {
	return backlite.NewQueue(BackfillSummariesProcessor(refresher))
}
