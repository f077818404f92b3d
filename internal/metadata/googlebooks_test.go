package metadata

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orwellVolume = `{
  "totalItems": 1,
  "items": [{"volumeInfo": {
    "title": "1984",
    "authors": ["George Orwell"],
    "publisher": "Signet Classic",
    "publishedDate": "1961"
  }}]
}`

func TestGoogleBooksClient_Volume(t *testing.T) {
	var gotQuery, gotKey string
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(orwellVolume))
	})

	client := NewGoogleBooksClient("secret", testConfig(server.URL))
	v, err := client.Volume(context.Background(), "978-0-451-52493-5")
	require.NoError(t, err)

	assert.Equal(t, "isbn:9780451524935", gotQuery)
	assert.Equal(t, "secret", gotKey)

	md := v.Metadata()
	assert.Equal(t, "George Orwell", md.Authors.String())
	assert.Equal(t, "Signet Classic", md.Publisher.String())
	assert.Equal(t, "1961", md.PublishedDate.String())
}

func TestGoogleBooksClient_MissingFields(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems":1,"items":[{"volumeInfo":{"title":"Untitled"}}]}`))
	})

	client := NewGoogleBooksClient("", testConfig(server.URL))
	v, err := client.Volume(context.Background(), "123")
	require.NoError(t, err)

	md := v.Metadata()
	assert.True(t, md.Authors.Missing)
	assert.True(t, md.Publisher.Missing)
	assert.True(t, md.PublishedDate.Missing)
}

func TestGoogleBooksClient_NoItems(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems":0}`))
	})

	client := NewGoogleBooksClient("", testConfig(server.URL))
	_, err := client.Volume(context.Background(), "0000000000")
	assert.ErrorIs(t, err, ErrISBNNotFound)
	assert.NotErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestGoogleBooksClient_ServerError(t *testing.T) {
	var calls atomic.Int32
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	client := NewGoogleBooksClient("", testConfig(server.URL))

	for i := 0; i < 2; i++ {
		_, err := client.Volume(context.Background(), "123")
		require.ErrorIs(t, err, ErrUpstreamUnavailable)
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	}

	// The breaker is open now and short-circuits the call.
	_, err := client.Volume(context.Background(), "123")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGoogleBooksClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"totalItems":0,"items":[]}`))
	})

	client := NewGoogleBooksClient("", testConfig(server.URL))
	for i := 0; i < 4; i++ {
		_, err := client.Volume(context.Background(), "123")
		require.ErrorIs(t, err, ErrISBNNotFound)
	}
	assert.Equal(t, int32(4), calls.Load())
}

func TestGoogleBooksClient_Unreachable(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	client := NewGoogleBooksClient("", testConfig(server.URL))
	_, err := client.Volume(context.Background(), "123")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestQueryISBN(t *testing.T) {
	assert.Equal(t, "9780134685991", queryISBN("978-0-13-468599-1"))
	assert.Equal(t, "9780134685991", queryISBN(" 978 0 13 468599 1 "))
	assert.Equal(t, "abc", queryISBN("abc"))
}
