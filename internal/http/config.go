package http

import (
	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Books   BookCatalog
	Ratings RatingCatalog
	Auditor *audit.Auditor

	// Database is nil when the in-memory store is used.
	Database  *database.Database
	StoreName string

	// Summary work; TaskStatuses is nil when tasks run inline.
	SummaryQueue SummaryQueue
	TaskStatuses TaskStatusReader

	// Application info
	Version string
}
