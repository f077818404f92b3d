package metadata

import (
	"context"
	"fmt"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// VolumeFinder finds bibliographic data by ISBN.
type VolumeFinder interface {
	Volume(ctx context.Context, isbn string) (*Volume, error)
}

// LanguageFinder finds the languages a book is available in.
type LanguageFinder interface {
	Languages(ctx context.Context, isbn string) (entities.Languages, error)
}

// Lookup combines Google Books (authors, publisher, date) with OpenLibrary (languages).
type Lookup struct {
	volumes   VolumeFinder
	languages LanguageFinder
}

func NewLookup(volumes VolumeFinder, languages LanguageFinder) *Lookup {
	return &Lookup{volumes: volumes, languages: languages}
}

// Lookup fails fast on the first source that cannot answer.
func (l *Lookup) Lookup(ctx context.Context, isbn string) (*entities.Metadata, error) {
	volume, err := l.volumes.Volume(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGoogleBooks, err)
	}

	langs, err := l.languages.Languages(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenLibrary, err)
	}

	md := volume.Metadata()
	md.Language = langs
	return &md, nil
}
