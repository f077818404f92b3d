package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/cli"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/ratings"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/metadata"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/summary"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookStore implementations
var _ catalog.BookStore = (*catalog.MemoryBookStore)(nil)
var _ catalog.BookStore = (*books.Repository)(nil)

// RatingStore implementations
var _ catalog.RatingStore = (*catalog.MemoryRatingStore)(nil)
var _ catalog.RatingStore = (*ratings.Repository)(nil)

// HTTP controller dependencies
var _ http.BookCatalog = (*catalog.Service)(nil)
var _ http.RatingCatalog = (*catalog.Service)(nil)

// =============================================================================
// External Services
// =============================================================================

// MetadataProvider implementations
var _ catalog.MetadataProvider = (*metadata.Lookup)(nil)
var _ metadata.VolumeFinder = (*metadata.GoogleBooksClient)(nil)
var _ metadata.LanguageFinder = (*metadata.OpenLibraryClient)(nil)

// Summarizer implementations
var _ catalog.Summarizer = (*summary.GeminiClient)(nil)
var _ cli.Generator = (*summary.GeminiClient)(nil)

// =============================================================================
// Background Work
// =============================================================================

// SummaryQueue implementations
var _ http.SummaryQueue = (*tasks.Client)(nil)
var _ http.SummaryQueue = (*tasks.Inline)(nil)
var _ http.TaskStatusReader = (*tasks.Client)(nil)

// BackfillTrigger implementations
var _ scheduler.BackfillTrigger = (*tasks.Client)(nil)
var _ scheduler.BackfillTrigger = (*tasks.Inline)(nil)

// SummaryRefresher implementations
var _ tasks.SummaryRefresher = (*catalog.Service)(nil)
