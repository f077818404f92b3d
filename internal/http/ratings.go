package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/metrics"
)

type RatingsController struct {
	catalog RatingCatalog
}

func NewRatingsController(catalog RatingCatalog) *RatingsController {
	return &RatingsController{catalog: catalog}
}

// ListRatings handles GET /ratings
// An optional id query parameter narrows the list to one book.
func (controller *RatingsController) ListRatings(c *gin.Context) {
	ratings, err := controller.catalog.Ratings(c.Request.Context(), c.Query("id"))
	if err != nil {
		respondInternalError(c, err, "list ratings")
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// GetRating handles GET /ratings/:id
func (controller *RatingsController) GetRating(c *gin.Context) {
	rating, err := controller.catalog.Rating(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		respondNotFoundMessage(c, "Ratings not found for the given book ID")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get rating")
		return
	}
	c.JSON(http.StatusOK, rating)
}

// AddRating handles POST /ratings/:id/values
func (controller *RatingsController) AddRating(c *gin.Context) {
	if !requireJSON(c) {
		return
	}
	raw, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "Invalid JSON data.")
		return
	}
	var body map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		respondBadRequest(c, "Invalid JSON data.")
		return
	}

	id := c.Param("id")
	if _, err := controller.catalog.Rating(c.Request.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			metrics.RatingsSubmitted.WithLabelValues("not_found").Inc()
			respondError(c, http.StatusNotFound, "Book not found")
			return
		}
		respondInternalError(c, err, "add rating")
		return
	}

	value, ok := ratingValue(body["value"])
	if !ok {
		metrics.RatingsSubmitted.WithLabelValues("invalid").Inc()
		respondUnprocessable(c, "Invalid rating value. Must be an integer between 1 and 5")
		return
	}

	average, err := controller.catalog.Rate(c.Request.Context(), id, value)
	switch {
	case err == nil:
		metrics.RatingsSubmitted.WithLabelValues("accepted").Inc()
		c.JSON(http.StatusCreated, gin.H{"new_average_rating": average})
	case errors.Is(err, catalog.ErrNotFound):
		metrics.RatingsSubmitted.WithLabelValues("not_found").Inc()
		respondError(c, http.StatusNotFound, "Book not found")
	case errors.Is(err, catalog.ErrInvalidValue):
		metrics.RatingsSubmitted.WithLabelValues("invalid").Inc()
		respondUnprocessable(c, "Invalid rating value. Must be an integer between 1 and 5")
	default:
		respondInternalError(c, err, "add rating")
	}
}

// ratingValue accepts only a JSON integer literal; floats such as 4.0, strings and booleans are rejected.
func ratingValue(v any) (int, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, false
	}
	return i, catalog.ValidateRatingValue(i) == nil
}

// TopBooks handles GET /top
func (controller *RatingsController) TopBooks(c *gin.Context) {
	top, err := controller.catalog.TopBooks(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "top books")
		return
	}
	c.JSON(http.StatusOK, top)
}
