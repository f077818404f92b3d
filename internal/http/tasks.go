package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// TasksController handles summary task endpoints.
type TasksController struct {
	books    BookCatalog
	queue    SummaryQueue
	statuses TaskStatusReader
}

// NewTasksController creates a new TasksController. statuses may be nil when tasks run inline.
func NewTasksController(books BookCatalog, queue SummaryQueue, statuses TaskStatusReader) *TasksController {
	return &TasksController{books: books, queue: queue, statuses: statuses}
}

// RefreshSummary handles POST /books/:id/summary
func (tc *TasksController) RefreshSummary(c *gin.Context) {
	id := c.Param("id")
	if _, err := tc.books.Book(c.Request.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondNotFoundMessage(c, "Book not found")
			return
		}
		respondInternalError(c, err, "refresh summary")
		return
	}

	taskID, err := tc.queue.EnqueueSummaryRefresh(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "enqueue summary refresh")
		return
	}
	respondTaskAccepted(c, taskID, tasks.RefreshSummaryQueue)
}

// BackfillSummaries handles POST /tasks/summary-backfill
func (tc *TasksController) BackfillSummaries(c *gin.Context) {
	taskID, err := tc.queue.EnqueueSummaryBackfill(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "enqueue summary backfill")
		return
	}
	respondTaskAccepted(c, taskID, tasks.BackfillSummariesQueue)
}

// GetTaskStatus handles GET /tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if tc.statuses == nil {
		respondError(c, http.StatusNotFound, "task queue is not enabled")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.statuses.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": tasks.StatusString(status),
	})
}

func respondTaskAccepted(c *gin.Context, taskID, taskType string) {
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task_id": taskID,
		"type":    taskType,
		"message": "task enqueued",
	})
}
