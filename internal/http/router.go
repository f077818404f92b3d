package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(AccessLogMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(SecurityHeadersMiddleware())

	health := NewHealthController(cfg.Database, cfg.StoreName, cfg.Version)
	booksController := NewBooksController(cfg.Books, cfg.Auditor)
	ratingsController := NewRatingsController(cfg.Ratings)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Books
	router.POST("/books", booksController.AddBook)
	router.GET("/books", booksController.ListBooks)
	router.GET("/books/:id", booksController.GetBook)
	router.PUT("/books/:id", booksController.ReplaceBook)
	router.DELETE("/books/:id", booksController.DeleteBook)

	// Ratings
	router.GET("/ratings", ratingsController.ListRatings)
	router.GET("/ratings/:id", ratingsController.GetRating)
	router.POST("/ratings/:id/values", ratingsController.AddRating)
	router.GET("/top", ratingsController.TopBooks)

	// Summary tasks
	if cfg.SummaryQueue != nil {
		tasksController := NewTasksController(cfg.Books, cfg.SummaryQueue, cfg.TaskStatuses)
		router.POST("/books/:id/summary", tasksController.RefreshSummary)
		router.POST("/tasks/summary-backfill", tasksController.BackfillSummaries)
		router.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
