package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/library-management/internal/dashboard/domain"
	"github.com/tair/library-management/internal/dashboard/usecase/query"
	"github.com/tair/library-management/pkg/auth"
)

// DashboardHandler handles HTTP requests for the admin dashboard
type DashboardHandler struct {
	summaryHandler *query.GetSummaryHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(repo domain.ReportRepository) *DashboardHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_requests_total",
			Help: "Total number of dashboard requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_request_duration_seconds",
			Help:    "Duration of dashboard requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &DashboardHandler{
		summaryHandler: query.NewGetSummaryHandler(repo),
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
func (h *DashboardHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// GetSummary handles GET /api/dashboard (admin only)
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	size := 0
	if s := r.URL.Query().Get("top"); s != "" {
		size, _ = strconv.Atoi(s)
	}

	report, err := h.summaryHandler.Handle(r.Context(), query.GetSummaryQuery{RankingSize: size})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, report)
}

// respondJSON sends a JSON response
func (h *DashboardHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *DashboardHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/dashboard", h.metricsMiddleware("/api/dashboard", auth.AdminMiddleware(h.GetSummary))).Methods("GET")
}
