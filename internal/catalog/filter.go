package catalog

import (
	"fmt"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// NoSummary is shown in listings for books that carry no summary field at all.
const NoSummary = "No summary available"

// RecognizedLanguages are the language codes accepted as a filter value.
var RecognizedLanguages = []string{"heb", "eng", "spa", "chi"}

// Constraint is a single field=value filter term, kept in request order.
type Constraint struct {
	Field string
	Value string
}

// BookView is the listing representation of a book.
type BookView struct {
	ID            string   `json:"id"`
	ISBN          string   `json:"ISBN"`
	Title         string   `json:"title"`
	Genre         string   `json:"genre"`
	Authors       string   `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	Language      []string `json:"language"`
	Summary       string   `json:"summary"`
}

// NewBookView renders a book for listing.
func NewBookView(b entities.Book) BookView {
	summary := b.Summary.String()
	if b.Summary.IsZero() {
		summary = NoSummary
	}
	return BookView{
		ID:            b.ID,
		ISBN:          b.ISBN,
		Title:         b.Title,
		Genre:         b.Genre,
		Authors:       b.Authors.String(),
		Publisher:     b.Publisher.String(),
		PublishedDate: b.PublishedDate.String(),
		Language:      b.Language.List(),
		Summary:       summary,
	}
}

type matchFunc func(b *entities.Book, value string) bool

func equalsField(get func(b *entities.Book) string) matchFunc {
	return func(b *entities.Book, value string) bool {
		return strings.EqualFold(get(b), value)
	}
}

func ignored(*entities.Book, string) bool { return true }

// filterFields maps every filterable field name to its matching rule.
var filterFields = map[string]matchFunc{
	"id":            equalsField(func(b *entities.Book) string { return b.ID }),
	"ISBN":          equalsField(func(b *entities.Book) string { return b.ISBN }),
	"title":         equalsField(func(b *entities.Book) string { return b.Title }),
	"genre":         equalsField(func(b *entities.Book) string { return b.Genre }),
	"publisher":     equalsField(func(b *entities.Book) string { return b.Publisher.String() }),
	"publishedDate": equalsField(func(b *entities.Book) string { return b.PublishedDate.String() }),
	"authors": func(b *entities.Book, value string) bool {
		return b.Authors.Contains(value)
	},
	"language": func(b *entities.Book, value string) bool {
		return b.Language.Contains(value)
	},
	"summary": ignored,
	"summery": ignored,
}

// ValidateConstraints checks filter values that have a closed domain.
func ValidateConstraints(constraints []Constraint) error {
	for _, c := range constraints {
		if c.Field != "language" {
			continue
		}
		if !isRecognizedLanguage(c.Value) {
			return fmt.Errorf("%w: invalid language request. Must be one of %v", ErrInvalidConstraint, RecognizedLanguages)
		}
	}
	return nil
}

func isRecognizedLanguage(code string) bool {
	for _, l := range RecognizedLanguages {
		if strings.EqualFold(l, code) {
			return true
		}
	}
	return false
}

// Matches reports whether the book satisfies every constraint.
// Constraints on unknown fields never match.
func Matches(b *entities.Book, constraints []Constraint) bool {
	for _, c := range constraints {
		match, ok := filterFields[c.Field]
		if !ok || !match(b, c.Value) {
			return false
		}
	}
	return true
}

// Filter returns the listing views of the books that satisfy all constraints.
func Filter(books []entities.Book, constraints []Constraint) ([]BookView, error) {
	if err := ValidateConstraints(constraints); err != nil {
		return nil, err
	}
	out := make([]BookView, 0, len(books))
	for i := range books {
		if Matches(&books[i], constraints) {
			out = append(out, NewBookView(books[i]))
		}
	}
	return out, nil
}
