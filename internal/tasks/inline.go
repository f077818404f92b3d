package tasks

import (
	"context"
	"fmt"
)

// InlineTaskID is reported for work that ran synchronously instead of being queued.
const InlineTaskID = "inline"

// Inline runs summary work in the caller's goroutine. It stands in for Client when TASKS_ENABLED=false.
type Inline struct {
	refresher SummaryRefresher
}

func NewInline(refresher SummaryRefresher) *Inline {
	return &Inline{refresher: refresher}
}

func (i *Inline) EnqueueSummaryRefresh(ctx context.Context, bookID string) (string, error) {
	if err := RefreshSummaryProcessor(i.refresher)(ctx, RefreshSummaryTask{BookID: bookID}); err != nil {
		return "", err
	}
	return InlineTaskID, nil
}

func (i *Inline) EnqueueSummaryBackfill(ctx context.Context) (string, error) {
	if err := BackfillSummariesProcessor(i.refresher)(ctx, BackfillSummariesTask{}); err != nil {
		return "", fmt.Errorf("inline backfill: %w", err)
	}
	return InlineTaskID, nil
}
