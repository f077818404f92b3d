package metadata

import (
	"errors"
	"fmt"
)

var (
	// ErrISBNNotFound means Google Books has no volume for the ISBN.
	ErrISBNNotFound = errors.New("invalid ISBN number; not found in Google Books API")

	// ErrNoLanguageRecord means OpenLibrary returned no usable record for the ISBN.
	ErrNoLanguageRecord = errors.New("unable to retrieve information from OpenLibrary")

	// ErrUpstreamUnavailable means an external service could not be reached or failed.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrGoogleBooks and ErrOpenLibrary mark which source a Lookup error came from.
	ErrGoogleBooks = errors.New("google books")
	ErrOpenLibrary = errors.New("openlibrary")
)

// StatusError carries an unexpected HTTP status from an upstream service.
type StatusError struct {
	Service string
	Code    int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Service, e.Code)
}

// isUpstreamFailure decides what counts against a service's circuit breaker.
// Lookups that simply found nothing are healthy answers.
func isUpstreamFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUpstreamUnavailable) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 500
}
