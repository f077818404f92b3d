package entities

import "regexp"

// Genres accepted for a catalog entry.
var Genres = []string{
	"Fiction",
	"Children",
	"Biography",
	"Science",
	"Science Fiction",
	"Fantasy",
	"Other",
}

// IsValidGenre reports whether genre is one of Genres (exact match).
func IsValidGenre(genre string) bool {
	for _, g := range Genres {
		if g == genre {
			return true
		}
	}
	return false
}

type Book struct {
	ID            string    `gorm:"primaryKey;size:20" json:"id"`
	ISBN          string    `gorm:"uniqueIndex;size:32" json:"ISBN"`
	Title         string    `gorm:"size:512" json:"title"`
	Genre         string    `gorm:"size:64" json:"genre"`
	Authors       Authors   `gorm:"type:text" json:"authors"`
	Publisher     Text      `gorm:"type:text" json:"publisher"`
	PublishedDate Text      `gorm:"type:text" json:"publishedDate"`
	Language      Languages `gorm:"type:text" json:"language"`
	Summary       Text      `gorm:"type:text" json:"summary"`

	// Seq preserves insertion order in SQL-backed stores.
	Seq int64 `gorm:"index" json:"-"`
}

var publishedDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
}

// NormalizePublishedDate keeps a year or an ISO date and marks anything else as missing.
func NormalizePublishedDate(date Text) Text {
	if date.Missing {
		return date
	}
	for _, p := range publishedDatePatterns {
		if p.MatchString(date.Content) {
			return date
		}
	}
	return MissingText()
}
