package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// This file consolidates the interfaces HTTP controllers depend on.
// *catalog.Service satisfies BookCatalog and RatingCatalog.

// BookCatalog provides registration, lookup and maintenance of books.
type BookCatalog interface {
	Register(ctx context.Context, nb catalog.NewBook) (*entities.Book, error)
	Book(ctx context.Context, id string) (*entities.Book, error)
	Books(ctx context.Context, constraints []catalog.Constraint) ([]catalog.BookView, error)
	Replace(ctx context.Context, id string, book entities.Book) error
	Delete(ctx context.Context, id string) error
}

// RatingCatalog provides rating submission and the leaderboard.
type RatingCatalog interface {
	Rate(ctx context.Context, id string, value int) (float64, error)
	Rating(ctx context.Context, id string) (*entities.Rating, error)
	Ratings(ctx context.Context, filterID string) ([]entities.Rating, error)
	TopBooks(ctx context.Context) ([]catalog.TopBook, error)
}

// SummaryQueue schedules summary work and returns the task id.
// Both *tasks.Client and *tasks.Inline implement it.
type SummaryQueue interface {
	EnqueueSummaryRefresh(ctx context.Context, bookID string) (string, error)
	EnqueueSummaryBackfill(ctx context.Context) (string, error)
}

// TaskStatusReader reports the state of a queued task.
type TaskStatusReader interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}
