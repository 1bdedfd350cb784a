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

	catalog "github.com/tair/library-management/internal/catalog/domain"
	"github.com/tair/library-management/internal/ledger/domain"
	"github.com/tair/library-management/internal/ledger/usecase/command"
	"github.com/tair/library-management/internal/ledger/usecase/query"
	"github.com/tair/library-management/kafka"
	"github.com/tair/library-management/pkg/auth"
	"github.com/tair/library-management/pkg/logger"
)

// Config carries the lending policy applied by the ledger endpoints.
type Config struct {
	LoanPeriodDays int
	FeePerDay      int64
}

// DefaultConfig returns the lending policy the library opened with.
func DefaultConfig() Config {
	return Config{LoanPeriodDays: 14, FeePerDay: 5000}
}

// LedgerHandler handles HTTP requests for the borrowing ledger
type LedgerHandler struct {
	// Command handlers
	borrowHandler *command.BorrowBookHandler
	returnHandler *command.ReturnBookHandler

	// Query handlers
	listForUserHandler *query.ListForUserHandler
	listAllHandler     *query.ListAllHandler
	listOverdueHandler *query.ListOverdueHandler

	config    Config
	publisher *kafka.Publisher

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	activeBorrows  prometheus.Gauge

	repo domain.BorrowRecordRepository
}

// NewLedgerHandler creates a new ledger handler. The publisher may be nil
// when Kafka is not configured.
func NewLedgerHandler(repo domain.BorrowRecordRepository, config Config, publisher *kafka.Publisher) *LedgerHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_requests_total",
			Help: "Total number of requests to the borrowing ledger",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_request_duration_seconds",
			Help:    "Duration of ledger requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	activeBorrows := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_active_borrows",
			Help: "Number of borrow records still active",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(activeBorrows)

	return &LedgerHandler{
		borrowHandler:      command.NewBorrowBookHandler(repo),
		returnHandler:      command.NewReturnBookHandler(repo),
		listForUserHandler: query.NewListForUserHandler(repo),
		listAllHandler:     query.NewListAllHandler(repo),
		listOverdueHandler: query.NewListOverdueHandler(repo),
		config:             config,
		publisher:          publisher,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
		activeBorrows:      activeBorrows,
		repo:               repo,
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
func (h *LedgerHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// BorrowBook handles POST /api/borrows
func (h *LedgerHandler) BorrowBook(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		BookID uint `json:"book_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.BorrowBookCommand{
		BookID:         req.BookID,
		UserID:         identity.UserID,
		LoanPeriodDays: h.config.LoanPeriodDays,
	}

	record, err := h.borrowHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.publishBorrowed(r, record)
	h.updateActiveBorrowsMetric(r.Context())
	h.respondJSON(w, http.StatusCreated, record)
}

// ReturnBook handles POST /api/borrows/{id}/return
func (h *LedgerHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
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

	cmd := command.ReturnBookCommand{
		RecordID:  uint(id),
		Actor:     identity,
		FeePerDay: h.config.FeePerDay,
	}

	result, err := h.returnHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	if !result.AlreadyReturned {
		h.publishReturned(r, result.Record)
	}
	h.updateActiveBorrowsMetric(r.Context())
	h.respondJSON(w, http.StatusOK, result)
}

// ListMyBorrows handles GET /api/borrows/my
func (h *LedgerHandler) ListMyBorrows(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	views, err := h.listForUserHandler.Handle(r.Context(), query.ListForUserQuery{
		UserID:    identity.UserID,
		FeePerDay: h.config.FeePerDay,
	})
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, views)
}

// ListAllBorrows handles GET /api/borrows (admin only)
func (h *LedgerHandler) ListAllBorrows(w http.ResponseWriter, r *http.Request) {
	views, err := h.listAllHandler.Handle(r.Context(), query.ListAllQuery{FeePerDay: h.config.FeePerDay})
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.updateActiveBorrowsMetric(r.Context())
	h.respondJSON(w, http.StatusOK, views)
}

// ListOverdue handles GET /api/borrows/overdue (admin only)
func (h *LedgerHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	views, err := h.listOverdueHandler.Handle(r.Context(), query.ListOverdueQuery{FeePerDay: h.config.FeePerDay})
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, views)
}

// publishBorrowed emits a book.borrowed event; failures are logged, not
// surfaced, since the loan has already committed.
func (h *LedgerHandler) publishBorrowed(r *http.Request, record *domain.BorrowRecord) {
	if h.publisher == nil {
		return
	}
	event := kafka.BookBorrowedEvent{
		RecordID: record.ID,
		BookID:   record.BookID,
		UserID:   record.UserID,
		DueDate:  record.DueDate,
	}
	if err := h.publisher.PublishBookBorrowed(r.Context(), event); err != nil {
		logger.Error(r.Context()).Err(err).Uint("record_id", record.ID).Msg("Failed to publish borrow event")
	}
}

// publishReturned emits a book.returned event with the final late fee.
func (h *LedgerHandler) publishReturned(r *http.Request, record *domain.BorrowRecord) {
	if h.publisher == nil {
		return
	}
	event := kafka.BookReturnedEvent{
		RecordID: record.ID,
		BookID:   record.BookID,
		UserID:   record.UserID,
		LateFee:  record.LateFee,
	}
	if record.ReturnDate != nil {
		event.ReturnDate = *record.ReturnDate
	}
	if err := h.publisher.PublishBookReturned(r.Context(), event); err != nil {
		logger.Error(r.Context()).Err(err).Uint("record_id", record.ID).Msg("Failed to publish return event")
	}
}

// updateActiveBorrowsMetric refreshes the active borrows gauge
func (h *LedgerHandler) updateActiveBorrowsMetric(ctx context.Context) {
	count, err := h.repo.CountActive(ctx)
	if err == nil {
		h.activeBorrows.Set(float64(count))
	}
}

// statusForError maps ledger errors to HTTP status codes. Catalog errors
// travel through borrow untouched.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, catalog.ErrNoCopiesAvailable):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// respondJSON sends a JSON response
func (h *LedgerHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *LedgerHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all ledger routes
func (h *LedgerHandler) RegisterRoutes(router *mux.Router) {
	// Authenticated member routes
	router.HandleFunc("/api/borrows", h.metricsMiddleware("/api/borrows", auth.Middleware(h.BorrowBook))).Methods("POST")
	router.HandleFunc("/api/borrows/my", h.metricsMiddleware("/api/borrows/my", auth.Middleware(h.ListMyBorrows))).Methods("GET")
	router.HandleFunc("/api/borrows/{id}/return", h.metricsMiddleware("/api/borrows/{id}/return", auth.Middleware(h.ReturnBook))).Methods("POST")

	// Admin routes
	router.HandleFunc("/api/borrows", h.metricsMiddleware("/api/borrows", auth.AdminMiddleware(h.ListAllBorrows))).Methods("GET")
	router.HandleFunc("/api/borrows/overdue", h.metricsMiddleware("/api/borrows/overdue", auth.AdminMiddleware(h.ListOverdue))).Methods("GET")
}
