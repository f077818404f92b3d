package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_Ping(t *testing.T) {
	router := newTestRouter(newTestService(&stubProvider{}))

	w := doRequest(router, "GET", "/ping", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", decodeObject(t, w)["message"])
}

func TestRouter_RequestID(t *testing.T) {
	router := newTestRouter(newTestService(&stubProvider{}))

	t.Run("generated", func(t *testing.T) {
		w := doRequest(router, "GET", "/ping", "")
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	})
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := newTestRouter(newTestService(&stubProvider{}))

	w := doRequest(router, "GET", "/ping", "")

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(newTestService(&stubProvider{}))
	doRequest(router, "GET", "/books", "")

	w := doRequest(router, "GET", "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bookshelf_api_requests_total")
	assert.Contains(t, w.Body.String(), `endpoint="/books"`)
}

func TestRouter_SummaryRoutesNeedAQueue(t *testing.T) {
	service := newTestService(&stubProvider{})
	router := NewRouter(RouterConfig{Books: service, Ratings: service, StoreName: "memory"})

	w := doRequest(router, "POST", "/books/1/summary", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
