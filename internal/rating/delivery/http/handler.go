package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalog "github.com/tair/library-management/internal/catalog/domain"
	ledger "github.com/tair/library-management/internal/ledger/domain"
	"github.com/tair/library-management/internal/rating/domain"
	"github.com/tair/library-management/internal/rating/usecase/command"
	"github.com/tair/library-management/internal/rating/usecase/query"
	"github.com/tair/library-management/pkg/auth"
)

// RatingHandler handles HTTP requests for book ratings
type RatingHandler struct {
	// Command handlers
	rateHandler *command.RateBookHandler

	// Query handlers
	averageHandler *query.AverageRatingHandler
	reviewsHandler *query.ListReviewsHandler

	repo domain.RatingRepository

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(repo domain.RatingRepository) *RatingHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rating_requests_total",
			Help: "Total number of requests to the rating service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rating_request_duration_seconds",
			Help:    "Duration of rating requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &RatingHandler{
		rateHandler:    command.NewRateBookHandler(repo),
		averageHandler: query.NewAverageRatingHandler(repo),
		reviewsHandler: query.NewListReviewsHandler(repo),
		repo:           repo,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
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
func (h *RatingHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// RateBook handles POST /api/borrows/{id}/rate
func (h *RatingHandler) RateBook(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var req struct {
		Rating int    `json:"rating"`
		Review string `json:"review"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RateBookCommand{
		RecordID: uint(id),
		Actor:    identity,
		Score:    req.Rating,
		Review:   req.Review,
	}

	if err := h.rateHandler.Handle(r.Context(), cmd); err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Rating saved"})
}

// GetAverageRating handles GET /api/books/{id}/rating
func (h *RatingHandler) GetAverageRating(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	result, err := h.averageHandler.Handle(r.Context(), query.AverageRatingQuery{BookID: uint(id)})
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// ListReviews handles GET /api/books/{id}/reviews
func (h *RatingHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, _ = strconv.Atoi(l)
	}

	reviews, err := h.reviewsHandler.Handle(r.Context(), query.ListReviewsQuery{BookID: uint(id), Limit: limit})
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, reviews)
}

// CheckEligibility handles GET /api/books/{id}/rating/eligibility
func (h *RatingHandler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	eligible, err := h.repo.HasReturnedRecord(r.Context(), uint(id), identity.UserID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"eligible": eligible})
}

// statusForError maps rating errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotEligible):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidScore):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

// respondJSON sends a JSON response
func (h *RatingHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *RatingHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all rating routes
func (h *RatingHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/api/books/{id}/rating", h.metricsMiddleware("/api/books/{id}/rating", h.GetAverageRating)).Methods("GET")
	router.HandleFunc("/api/books/{id}/reviews", h.metricsMiddleware("/api/books/{id}/reviews", h.ListReviews)).Methods("GET")

	// Authenticated member routes
	router.HandleFunc("/api/borrows/{id}/rate", h.metricsMiddleware("/api/borrows/{id}/rate", auth.Middleware(h.RateBook))).Methods("POST")
	router.HandleFunc("/api/books/{id}/rating/eligibility", h.metricsMiddleware("/api/books/{id}/rating/eligibility", auth.Middleware(h.CheckEligibility))).Methods("GET")
}
