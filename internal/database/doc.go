// Package database provides the SQLite-backed stores.
//
//	database/
//	├── database.go   # Connection setup and migrations
//	├── books/        # catalog.BookStore
//	└── ratings/      # catalog.RatingStore
//
// Usage:
//
//	db, err := database.NewDatabase("./bookshelf.db")
//	booksRepo := books.NewRepository(db.DB)
//	ratingsRepo := ratings.NewRepository(db.DB)
package database
