package catalog

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookStore holds the catalog entries.
type BookStore interface {
	// Insert assigns the next sequential ID to book, stores it and returns the ID.
	Insert(ctx context.Context, book entities.Book) (string, error)
	FindByID(ctx context.Context, id string) (*entities.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*entities.Book, error)
	// Replace overwrites the record with the same ID.
	Replace(ctx context.Context, book entities.Book) error
	DeleteByID(ctx context.Context, id string) (bool, error)
	// All returns every book in insertion order.
	All(ctx context.Context) ([]entities.Book, error)
}

// RatingStore holds the per-book rating aggregates.
type RatingStore interface {
	Create(ctx context.Context, rating entities.Rating) error
	// Record appends value to the book's ratings and returns the new average.
	Record(ctx context.Context, id string, value int) (float64, error)
	Get(ctx context.Context, id string) (*entities.Rating, error)
	// List returns all ratings, or only the one matching filterID when it is non-empty.
	List(ctx context.Context, filterID string) ([]entities.Rating, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ValidateRatingValue rejects anything outside MinRating..MaxRating.
func ValidateRatingValue(value int) error {
	if value < entities.MinRating || value > entities.MaxRating {
		return fmt.Errorf("%w: got %d", ErrInvalidValue, value)
	}
	return nil
}

// MemoryBookStore is a process-local BookStore.
type MemoryBookStore struct {
	mu     sync.RWMutex
	books  []entities.Book
	lastID int
}

func NewMemoryBookStore() *MemoryBookStore {
	return &MemoryBookStore{}
}

func (s *MemoryBookStore) Insert(_ context.Context, book entities.Book) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	book.ID = strconv.Itoa(s.lastID)
	book.Seq = int64(s.lastID)
	s.books = append(s.books, book)
	return book.ID, nil
}

func (s *MemoryBookStore) FindByID(_ context.Context, id string) (*entities.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		book := s.books[i]
		return &book, nil
	}
	return nil, fmt.Errorf("book %s: %w", id, ErrNotFound)
}

func (s *MemoryBookStore) FindByISBN(_ context.Context, isbn string) (*entities.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.books {
		if b.ISBN == isbn {
			book := b
			return &book, nil
		}
	}
	return nil, fmt.Errorf("book with ISBN %s: %w", isbn, ErrNotFound)
}

func (s *MemoryBookStore) Replace(_ context.Context, book entities.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(book.ID)
	if i < 0 {
		return fmt.Errorf("book %s: %w", book.ID, ErrNotFound)
	}
	book.Seq = s.books[i].Seq
	s.books[i] = book
	return nil
}

func (s *MemoryBookStore) DeleteByID(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.books = append(s.books[:i], s.books[i+1:]...)
	return true, nil
}

func (s *MemoryBookStore) All(_ context.Context) ([]entities.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Book, len(s.books))
	copy(out, s.books)
	return out, nil
}

func (s *MemoryBookStore) indexOf(id string) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}

// MemoryRatingStore is a process-local RatingStore.
type MemoryRatingStore struct {
	mu      sync.RWMutex
	ratings []entities.Rating
}

func NewMemoryRatingStore() *MemoryRatingStore {
	return &MemoryRatingStore{}
}

func (s *MemoryRatingStore) Create(_ context.Context, rating entities.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(rating.ID) >= 0 {
		return fmt.Errorf("rating %s: %w", rating.ID, ErrDuplicateKey)
	}
	if rating.Values == nil {
		rating.Values = []int{}
	}
	rating.Average = entities.AverageOf(rating.Values)
	s.ratings = append(s.ratings, rating)
	return nil
}

func (s *MemoryRatingStore) Record(_ context.Context, id string, value int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return 0, fmt.Errorf("rating %s: %w", id, ErrNotFound)
	}
	if err := ValidateRatingValue(value); err != nil {
		return 0, err
	}
	// Copy before appending so snapshots handed out earlier never alias the new slice.
	values := make([]int, len(s.ratings[i].Values), len(s.ratings[i].Values)+1)
	copy(values, s.ratings[i].Values)
	s.ratings[i].Values = values
	s.ratings[i].AddValue(value)
	return s.ratings[i].Average, nil
}

func (s *MemoryRatingStore) Get(_ context.Context, id string) (*entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		r := s.ratings[i]
		return &r, nil
	}
	return nil, fmt.Errorf("rating %s: %w", id, ErrNotFound)
}

func (s *MemoryRatingStore) List(_ context.Context, filterID string) ([]entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Rating, 0, len(s.ratings))
	for _, r := range s.ratings {
		if filterID == "" || r.ID == filterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryRatingStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.ratings = append(s.ratings[:i], s.ratings[i+1:]...)
	return true, nil
}

func (s *MemoryRatingStore) indexOf(id string) int {
	for i := range s.ratings {
		if s.ratings[i].ID == id {
			return i
		}
	}
	return -1
}
