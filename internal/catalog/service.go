package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// MetadataProvider looks up bibliographic data for an ISBN.
type MetadataProvider interface {
	Lookup(ctx context.Context, isbn string) (*entities.Metadata, error)
}

// Summarizer produces a short summary of a book. Failures are reported as a missing Text.
type Summarizer interface {
	Summarize(ctx context.Context, title, authors string) entities.Text
}

// NewBook is the client-supplied part of a registration.
type NewBook struct {
	ISBN  string
	Title string
	Genre string
}

// Service owns the book and rating stores and keeps them consistent with each other.
type Service struct {
	books      BookStore
	ratings    RatingStore
	provider   MetadataProvider
	summarizer Summarizer

	// mu serializes the sequences that touch both stores.
	mu sync.Mutex
}

func NewService(books BookStore, ratings RatingStore, provider MetadataProvider, summarizer Summarizer) *Service {
	return &Service{
		books:      books,
		ratings:    ratings,
		provider:   provider,
		summarizer: summarizer,
	}
}

// Register enriches a new book with external metadata and adds it with an empty rating record.
func (s *Service) Register(ctx context.Context, nb NewBook) (*entities.Book, error) {
	if !entities.IsValidGenre(nb.Genre) {
		return nil, fmt.Errorf("%w: genre is not one of the accepted values", ErrInvalidField)
	}
	if err := s.ensureISBNFree(ctx, nb.ISBN, ""); err != nil {
		return nil, err
	}

	md, err := s.provider.Lookup(ctx, nb.ISBN)
	if err != nil {
		return nil, fmt.Errorf("lookup metadata for %s: %w", nb.ISBN, err)
	}

	summary := md.Summary
	if summary.IsZero() {
		summary = s.summarize(ctx, nb.Title, md.Authors.String())
	}

	book := entities.Book{
		ISBN:          nb.ISBN,
		Title:         nb.Title,
		Genre:         nb.Genre,
		Authors:       md.Authors,
		Publisher:     md.Publisher,
		PublishedDate: entities.NormalizePublishedDate(md.PublishedDate),
		Language:      md.Language,
		Summary:       summary,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The lookup ran unlocked, so another registration may have taken the ISBN meanwhile.
	if err := s.ensureISBNFree(ctx, nb.ISBN, ""); err != nil {
		return nil, err
	}

	id, err := s.books.Insert(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	book.ID = id

	if err := s.ratings.Create(ctx, entities.NewRating(id, book.Title)); err != nil {
		if _, delErr := s.books.DeleteByID(ctx, id); delErr != nil {
			return nil, errors.Join(fmt.Errorf("create rating: %w", err), delErr)
		}
		return nil, fmt.Errorf("create rating: %w", err)
	}
	return &book, nil
}

func (s *Service) Book(ctx context.Context, id string) (*entities.Book, error) {
	return s.books.FindByID(ctx, id)
}

// Books returns the listing views of the books matching constraints.
func (s *Service) Books(ctx context.Context, constraints []Constraint) ([]BookView, error) {
	all, err := s.books.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return Filter(all, constraints)
}

// Replace overwrites every field of an existing book.
func (s *Service) Replace(ctx context.Context, id string, book entities.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.books.FindByID(ctx, id); err != nil {
		return err
	}
	if !entities.IsValidGenre(book.Genre) {
		return fmt.Errorf("%w: genre is not one of the accepted values", ErrInvalidField)
	}
	book.ID = id
	book.PublishedDate = entities.NormalizePublishedDate(book.PublishedDate)

	if err := s.ensureISBNFree(ctx, book.ISBN, id); err != nil {
		return err
	}
	if err := s.books.Replace(ctx, book); err != nil {
		return fmt.Errorf("replace book %s: %w", id, err)
	}
	return nil
}

// Delete removes a book together with its ratings.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.books.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete book %s: %w", id, err)
	}
	if !removed {
		return fmt.Errorf("book %s: %w", id, ErrNotFound)
	}
	if _, err := s.ratings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete ratings of book %s: %w", id, err)
	}
	return nil
}

// Rate records a rating value and returns the book's new average.
func (s *Service) Rate(ctx context.Context, id string, value int) (float64, error) {
	return s.ratings.Record(ctx, id, value)
}

func (s *Service) Rating(ctx context.Context, id string) (*entities.Rating, error) {
	return s.ratings.Get(ctx, id)
}

func (s *Service) Ratings(ctx context.Context, filterID string) ([]entities.Rating, error) {
	return s.ratings.List(ctx, filterID)
}

// TopBooks returns the current leaderboard.
func (s *Service) TopBooks(ctx context.Context) ([]TopBook, error) {
	all, err := s.ratings.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return Top(all), nil
}

// RefreshSummary regenerates the summary of one book and reports whether one was obtained.
func (s *Service) RefreshSummary(ctx context.Context, id string) (bool, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	summary := s.summarize(ctx, book.Title, book.Authors.String())

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-read so a replace that happened during summarization is not overwritten.
	current, err := s.books.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if summary.Missing && !current.Summary.Missing && !current.Summary.IsZero() {
		return false, nil
	}
	current.Summary = summary
	if err := s.books.Replace(ctx, *current); err != nil {
		return false, fmt.Errorf("store summary of book %s: %w", id, err)
	}
	return !summary.Missing, nil
}

// BooksMissingSummary returns the IDs of books without a usable summary.
func (s *Service) BooksMissingSummary(ctx context.Context) ([]string, error) {
	all, err := s.books.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	var ids []string
	for _, b := range all {
		if b.Summary.Missing || b.Summary.IsZero() {
			ids = append(ids, b.ID)
		}
	}
	return ids, nil
}

func (s *Service) summarize(ctx context.Context, title, authors string) entities.Text {
	if s.summarizer == nil {
		return entities.MissingText()
	}
	return s.summarizer.Summarize(ctx, title, authors)
}

// ensureISBNFree fails with ErrDuplicateKey when a book other than exceptID holds isbn.
func (s *Service) ensureISBNFree(ctx context.Context, isbn, exceptID string) error {
	existing, err := s.books.FindByISBN(ctx, isbn)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check ISBN %s: %w", isbn, err)
	case existing.ID != exceptID:
		return ErrDuplicateKey
	}
	return nil
}
