package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/library-management/internal/catalog/domain"
	"github.com/tair/library-management/internal/catalog/usecase/command"
	"github.com/tair/library-management/internal/catalog/usecase/query"
	"github.com/tair/library-management/pkg/auth"
)

// BookHandler handles HTTP requests for the catalog
type BookHandler struct {
	// Command handlers
	addHandler    *command.AddBookHandler
	editHandler   *command.EditBookHandler
	deleteHandler *command.DeleteBookHandler

	// Query handlers
	getHandler    *query.GetBookHandler
	searchHandler *query.SearchBooksHandler
	latestHandler *query.ListLatestHandler

	repo           domain.BookRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	borrowedCopies prometheus.Gauge
}

// NewBookHandler creates a new catalog handler
func NewBookHandler(repo domain.BookRepository) *BookHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of requests to the catalog",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	borrowedCopies := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_borrowed_copies",
			Help: "Number of copies currently on loan",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(borrowedCopies)

	return &BookHandler{
		addHandler:     command.NewAddBookHandler(repo),
		editHandler:    command.NewEditBookHandler(repo),
		deleteHandler:  command.NewDeleteBookHandler(repo),
		getHandler:     query.NewGetBookHandler(repo),
		searchHandler:  query.NewSearchBooksHandler(repo),
		latestHandler:  query.NewListLatestHandler(repo),
		repo:           repo,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		borrowedCopies: borrowedCopies,
	}
}

// NewBookHandlerWithDI creates a catalog handler from wired dependencies
func NewBookHandlerWithDI(
	commands *CommandHandlers,
	queries *QueryHandlers,
	repo domain.BookRepository,
) *BookHandler {
	h := NewBookHandler(repo)
	h.addHandler = commands.AddHandler
	h.editHandler = commands.EditHandler
	h.deleteHandler = commands.DeleteHandler
	h.getHandler = queries.GetHandler
	h.searchHandler = queries.SearchHandler
	h.latestHandler = queries.LatestHandler
	return h
}

// CommandHandlers holds the catalog command handlers for DI
type CommandHandlers struct {
	AddHandler    *command.AddBookHandler
	EditHandler   *command.EditBookHandler
	DeleteHandler *command.DeleteBookHandler
}

// QueryHandlers holds the catalog query handlers for DI
type QueryHandlers struct {
	GetHandler    *query.GetBookHandler
	SearchHandler *query.SearchBooksHandler
	LatestHandler *query.ListLatestHandler
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *BookHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListBooks handles GET /api/books
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	q := query.SearchBooksQuery{
		Query:    r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}

	result, err := h.searchHandler.Handle(r.Context(), q)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.updateBorrowedMetric(r.Context())
	h.respondJSON(w, http.StatusOK, result)
}

// ListLatest handles GET /api/books/latest
func (h *BookHandler) ListLatest(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	books, err := h.latestHandler.Handle(r.Context(), query.ListLatestQuery{Limit: limit})
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, books)
}

// GetBook handles GET /api/books/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	book, err := h.getHandler.Handle(r.Context(), query.GetBookQuery{ID: uint(id)})
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, book)
}

// AddBook handles POST /api/books (admin only)
func (h *BookHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Author      string `json:"author"`
		Category    string `json:"category"`
		Description string `json:"description"`
		CoverURL    string `json:"cover_url"`
		Quantity    int    `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.AddBookCommand{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		Quantity:    req.Quantity,
	}

	book, err := h.addHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, book)
}

// EditBook handles PUT /api/books/{id} (admin only)
func (h *BookHandler) EditBook(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	var req struct {
		Title       string `json:"title"`
		Author      string `json:"author"`
		Category    string `json:"category"`
		Description string `json:"description"`
		CoverURL    string `json:"cover_url"`
		Quantity    int    `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.EditBookCommand{
		ID:          uint(id),
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		Quantity:    req.Quantity,
	}

	book, err := h.editHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.updateBorrowedMetric(r.Context())
	h.respondJSON(w, http.StatusOK, book)
}

// DeleteBook handles DELETE /api/books/{id} (admin only)
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteBookCommand{ID: uint(id)}); err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Book deleted successfully"})
}

// updateBorrowedMetric refreshes the borrowed-copies gauge
func (h *BookHandler) updateBorrowedMetric(ctx context.Context) {
	borrowed, err := h.repo.SumBorrowed(ctx)
	if err == nil {
		h.borrowedCopies.Set(float64(borrowed))
	}
}

// statusForError maps catalog errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBookInUse):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoCopiesAvailable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON sends a JSON response
func (h *BookHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *BookHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all catalog routes
func (h *BookHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/api/books", h.metricsMiddleware("/api/books", h.ListBooks)).Methods("GET")
	router.HandleFunc("/api/books/latest", h.metricsMiddleware("/api/books/latest", h.ListLatest)).Methods("GET")
	router.HandleFunc("/api/books/{id}", h.metricsMiddleware("/api/books/{id}", h.GetBook)).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/books", h.metricsMiddleware("/api/books", auth.AdminMiddleware(h.AddBook))).Methods("POST")
	router.HandleFunc("/api/books/{id}", h.metricsMiddleware("/api/books/{id}", auth.AdminMiddleware(h.EditBook))).Methods("PUT")
	router.HandleFunc("/api/books/{id}", h.metricsMiddleware("/api/books/{id}", auth.AdminMiddleware(h.DeleteBook))).Methods("DELETE")
}
