package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type fakeProvider struct {
	mu    sync.Mutex
	calls int
	md    entities.Metadata
	err   error
}

func (f *fakeProvider) Lookup(_ context.Context, _ string) (*entities.Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	md := f.md
	return &md, nil
}

type fakeSummarizer struct {
	summary entities.Text
	prompts []string
}

func (f *fakeSummarizer) Summarize(_ context.Context, title, authors string) entities.Text {
	f.prompts = append(f.prompts, title+"|"+authors)
	return f.summary
}

var errUpstream = errors.New("upstream down")

func defaultMetadata() entities.Metadata {
	return entities.Metadata{
		Authors:       entities.NewAuthors("George Orwell"),
		Publisher:     entities.SomeText("Secker & Warburg"),
		PublishedDate: entities.SomeText("1949-06-08"),
		Language:      entities.NewLanguages("eng", "heb"),
	}
}

func newTestService(provider *fakeProvider, summarizer *fakeSummarizer) *Service {
	return NewService(NewMemoryBookStore(), NewMemoryRatingStore(), provider, summarizer)
}

func ratingWith(id, title string, values ...int) entities.Rating {
	r := entities.NewRating(id, title)
	for _, v := range values {
		r.AddValue(v)
	}
	return r
}
