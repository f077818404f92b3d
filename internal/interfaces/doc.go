// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: ordered book catalog keyed by sequential id (internal/catalog/store.go)
//   - RatingStore: per-book rating values and averages (internal/catalog/store.go)
//   - BookCatalog, RatingCatalog: what HTTP controllers need from the catalog (internal/http/stores.go)
//
// Both stores have an in-memory implementation in internal/catalog and a gorm/SQLite
// implementation under internal/database. STORE_DRIVER picks one at startup.
//
// ## External Service Interfaces
//
//   - MetadataProvider: authors, publisher, date and languages for an ISBN (internal/catalog/service.go)
//   - VolumeFinder, LanguageFinder: the two sources behind metadata.Lookup (internal/metadata/lookup.go)
//   - Summarizer: a short book summary, missing on any failure (internal/catalog/service.go)
//
// ## Background Work Interfaces
//
//   - SummaryQueue: summary refresh and backfill, queued or inline (internal/http/stores.go)
//   - BackfillTrigger: what the cron scheduler fires (internal/scheduler/summary_backfill.go)
//   - SummaryRefresher: what task processors call on the catalog (internal/tasks/refresh_summary.go)
//
// # Adding a New Metadata Source
//
//  1. Implement VolumeFinder or LanguageFinder in internal/metadata/. Call getJSON
//     inside a breaker from resilience.NewBreaker.
//
//     var _ metadata.LanguageFinder = (*MyClient)(nil)
//
//  2. Pass it to metadata.NewLookup in entrypoint.go
//
// # Adding a New Store
//
//  1. Create a sub-package under internal/database/ with
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  2. Map gorm errors to catalog.ErrNotFound and catalog.ErrDuplicateKey.
//
//  3. Add a compile-time check to checks.go.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
