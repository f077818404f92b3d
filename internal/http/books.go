package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/metadata"
	"github.com/mrlokans/bookshelf/internal/metrics"
)

// registrationFields are the keys a registration body must contain, and the only ones allowed.
var registrationFields = []string{"ISBN", "title", "genre"}

type BooksController struct {
	catalog BookCatalog
	auditor *audit.Auditor
}

func NewBooksController(catalog BookCatalog, auditor *audit.Auditor) *BooksController {
	registerValidators()
	return &BooksController{
		catalog: catalog,
		auditor: auditor,
	}
}

// replaceBookRequest is the PUT body. Every field is required; pointers tell absent from empty.
type replaceBookRequest struct {
	ISBN          *string             `json:"ISBN" binding:"required"`
	Title         *string             `json:"title" binding:"required"`
	Genre         *string             `json:"genre" binding:"required,genre"`
	Authors       *entities.Authors   `json:"authors" binding:"required"`
	Publisher     *entities.Text      `json:"publisher" binding:"required"`
	PublishedDate *entities.Text      `json:"publishedDate" binding:"required"`
	Language      *entities.Languages `json:"language" binding:"required"`
	Summary       *entities.Text      `json:"summary" binding:"required"`
}

func (r replaceBookRequest) book() entities.Book {
	return entities.Book{
		ISBN:          *r.ISBN,
		Title:         *r.Title,
		Genre:         *r.Genre,
		Authors:       *r.Authors,
		Publisher:     *r.Publisher,
		PublishedDate: *r.PublishedDate,
		Language:      *r.Language,
		Summary:       *r.Summary,
	}
}

// AddBook handles POST /books
func (controller *BooksController) AddBook(c *gin.Context) {
	if !requireJSON(c) {
		return
	}
	raw, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "Invalid JSON data.")
		return
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		respondBadRequest(c, "Invalid JSON data.")
		return
	}
	nb, ok := parseNewBook(body)
	if !ok {
		respondUnprocessable(c, "ISBN, title, and genre fields (and only them) must be provided")
		return
	}

	book, err := controller.catalog.Register(c.Request.Context(), nb)
	controller.auditor.Record(audit.ActionRegister, bookIDOf(book), body, err)
	if err != nil {
		respondRegisterError(c, err)
		return
	}
	metrics.BooksRegistered.Inc()
	respondCreated(c, book)
}

// parseNewBook accepts exactly the registration keys, each holding a string.
func parseNewBook(body map[string]json.RawMessage) (catalog.NewBook, bool) {
	if len(body) != len(registrationFields) {
		return catalog.NewBook{}, false
	}
	values := make(map[string]string, len(registrationFields))
	for _, key := range registrationFields {
		rawValue, ok := body[key]
		if !ok {
			return catalog.NewBook{}, false
		}
		var s string
		if err := json.Unmarshal(rawValue, &s); err != nil {
			return catalog.NewBook{}, false
		}
		values[key] = s
	}
	return catalog.NewBook{
		ISBN:  values["ISBN"],
		Title: values["title"],
		Genre: values["genre"],
	}, true
}

func respondRegisterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrDuplicateKey):
		respondUnprocessable(c, "A book with this ISBN already exists")
	case errors.Is(err, catalog.ErrInvalidField):
		respondUnprocessable(c, "Genre is not one of the accepted values")
	case errors.Is(err, metadata.ErrISBNNotFound):
		respondUnprocessable(c, "Invalid ISBN number; not found in Google Books API")
	case errors.Is(err, metadata.ErrNoLanguageRecord):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "Unable to retrieve information from OpenLibrary",
			Details: err.Error(),
		})
	case errors.Is(err, metadata.ErrUpstreamUnavailable):
		message := "Unable to connect to Google Books API"
		if errors.Is(err, metadata.ErrOpenLibrary) {
			message = "Unable to connect to OpenLibrary API"
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message, Details: err.Error()})
	default:
		respondInternalError(c, err, "register book")
	}
}

// ListBooks handles GET /books
// Every query parameter is a filter term; terms are applied in the order they appear.
func (controller *BooksController) ListBooks(c *gin.Context) {
	constraints, err := parseConstraints(c.Request.URL.RawQuery)
	if err != nil {
		respondBadRequest(c, "Invalid query string")
		return
	}
	views, err := controller.catalog.Books(c.Request.Context(), constraints)
	if errors.Is(err, catalog.ErrInvalidConstraint) {
		respondBadRequest(c, fmt.Sprintf("Invalid language request. Must be one of %v.", catalog.RecognizedLanguages))
		return
	}
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, views)
}

// parseConstraints splits a raw query string into filter terms without losing their order,
// which url.Values would.
func parseConstraints(rawQuery string) ([]catalog.Constraint, error) {
	var constraints []catalog.Constraint
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		field, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, catalog.Constraint{Field: field, Value: v})
	}
	return constraints, nil
}

// GetBook handles GET /books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	book, err := controller.catalog.Book(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		respondNotFoundMessage(c, "Book not found")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// ReplaceBook handles PUT /books/:id
func (controller *BooksController) ReplaceBook(c *gin.Context) {
	if !requireJSON(c) {
		return
	}
	id := c.Param("id")
	if _, err := controller.catalog.Book(c.Request.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Book not found")
			return
		}
		respondInternalError(c, err, "replace book")
		return
	}

	var req replaceBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			respondBadRequest(c, "Invalid JSON data.")
			return
		}
		respondUnprocessable(c, replaceValidationMessage(verrs))
		return
	}

	err := controller.catalog.Replace(c.Request.Context(), id, req.book())
	controller.auditor.Record(audit.ActionReplace, id, req, err)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"id": id})
	case errors.Is(err, catalog.ErrNotFound):
		respondError(c, http.StatusNotFound, "Book not found")
	case errors.Is(err, catalog.ErrInvalidField):
		respondUnprocessable(c, "Genre is not one of the accepted values")
	case errors.Is(err, catalog.ErrDuplicateKey):
		respondUnprocessable(c, "A book with this ISBN already exists")
	default:
		respondInternalError(c, err, "replace book")
	}
}

// replaceValidationMessage reports missing fields ahead of an unaccepted genre.
func replaceValidationMessage(verrs validator.ValidationErrors) string {
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return "All fields must be provided"
		}
	}
	return "Genre is not one of the accepted values"
}

// DeleteBook handles DELETE /books/:id
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id := c.Param("id")
	err := controller.catalog.Delete(c.Request.Context(), id)
	controller.auditor.Record(audit.ActionDelete, id, nil, err)
	if errors.Is(err, catalog.ErrNotFound) {
		respondNotFoundMessage(c, "Book not found")
		return
	}
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	respondMessage(c, "Book and its ratings deleted")
}

func bookIDOf(book *entities.Book) string {
	if book == nil {
		return ""
	}
	return book.ID
}
