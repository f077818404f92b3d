package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mrlokans/bookshelf/internal/resilience"
)

func testConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Breaker: resilience.BreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute},
	}
}

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}
