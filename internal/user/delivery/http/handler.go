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

	"github.com/tair/library-management/internal/user/domain"
	"github.com/tair/library-management/internal/user/usecase/command"
	"github.com/tair/library-management/internal/user/usecase/query"
	"github.com/tair/library-management/pkg/auth"
)

// UserHandler handles HTTP requests for the account directory
type UserHandler struct {
	// Command handlers
	registerHandler     *command.RegisterUserHandler
	loginHandler        *command.LoginUserHandler
	updateHandler       *command.UpdateProfileHandler
	changeRoleHandler   *command.ChangeRoleHandler
	toggleActiveHandler *command.ToggleActiveHandler

	// Query handlers
	getUserHandler *query.GetUserHandler
	listHandler    *query.ListUsersHandler
	statsHandler   *query.GetStatsHandler

	repo domain.UserRepository

	requestCounter     *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
	registeredAccounts prometheus.Gauge
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_requests_total",
			Help: "Total number of requests to the account directory",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_request_duration_seconds",
			Help:    "Duration of account directory requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	registeredAccounts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "user_registered_accounts",
			Help: "Number of registered accounts",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(registeredAccounts)

	return &UserHandler{
		registerHandler:     command.NewRegisterUserHandler(repo),
		loginHandler:        command.NewLoginUserHandler(repo),
		updateHandler:       command.NewUpdateProfileHandler(repo),
		changeRoleHandler:   command.NewChangeRoleHandler(repo),
		toggleActiveHandler: command.NewToggleActiveHandler(repo),
		getUserHandler:      query.NewGetUserHandler(repo),
		listHandler:         query.NewListUsersHandler(repo),
		statsHandler:        query.NewGetStatsHandler(repo),
		repo:                repo,
		requestCounter:      requestCounter,
		requestLatency:      requestLatency,
		registeredAccounts:  registeredAccounts,
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
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     domain.RoleMember,
	}

	user, err := h.registerHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.updateRegisteredAccountsMetric(r.Context())
	h.respondJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	}

	response, err := h.loginHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, response)
}

// GetProfile handles GET /users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{ID: identity.UserID})
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /users/me
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateProfileCommand{
		UserID:   identity.UserID,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	}

	user, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// CreateAccount handles POST /admin/users (admin only). Unlike public
// registration the caller may pick the role.
func (h *UserHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	}

	user, err := h.registerHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.updateRegisteredAccountsMetric(r.Context())
	h.respondJSON(w, http.StatusCreated, user)
}

// GetUser handles GET /admin/users/{id} (admin only)
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{ID: uint(id)})
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /admin/users (admin only)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListUsersQuery{
		Role:   r.URL.Query().Get("role"),
		Limit:  limit,
		Offset: offset,
	}

	users, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.updateRegisteredAccountsMetric(r.Context())
	h.respondJSON(w, http.StatusOK, users)
}

// ChangeRole handles PUT /admin/users/{id}/role (admin only)
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Role string `json:"role"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.ChangeRoleCommand{
		UserID: uint(id),
		Role:   req.Role,
	}

	user, err := h.changeRoleHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// ToggleActive handles PUT /admin/users/{id}/active (admin only)
func (h *UserHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.ToggleActiveCommand{
		UserID:   uint(id),
		IsActive: req.IsActive,
	}

	user, err := h.toggleActiveHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// GetStats handles GET /admin/stats (admin only)
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}

// updateRegisteredAccountsMetric refreshes the registered accounts gauge
func (h *UserHandler) updateRegisteredAccountsMetric(ctx context.Context) {
	count, err := h.repo.Count(ctx)
	if err == nil {
		h.registeredAccounts.Set(float64(count))
	}
}

// statusForError maps account directory errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// respondJSON sends a JSON response
func (h *UserHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *UserHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all account directory routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/auth/register", h.metricsMiddleware("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", h.metricsMiddleware("/auth/login", h.Login)).Methods("POST")

	// Authenticated member routes
	router.HandleFunc("/users/me", h.metricsMiddleware("/users/me", auth.Middleware(h.GetProfile))).Methods("GET")
	router.HandleFunc("/users/me", h.metricsMiddleware("/users/me", auth.Middleware(h.UpdateProfile))).Methods("PUT")

	// Admin routes
	router.HandleFunc("/admin/users", h.metricsMiddleware("/admin/users", auth.AdminMiddleware(h.CreateAccount))).Methods("POST")
	router.HandleFunc("/admin/users", h.metricsMiddleware("/admin/users", auth.AdminMiddleware(h.ListUsers))).Methods("GET")
	router.HandleFunc("/admin/users/{id}", h.metricsMiddleware("/admin/users/{id}", auth.AdminMiddleware(h.GetUser))).Methods("GET")
	router.HandleFunc("/admin/users/{id}/role", h.metricsMiddleware("/admin/users/{id}/role", auth.AdminMiddleware(h.ChangeRole))).Methods("PUT")
	router.HandleFunc("/admin/users/{id}/active", h.metricsMiddleware("/admin/users/{id}/active", auth.AdminMiddleware(h.ToggleActive))).Methods("PUT")
	router.HandleFunc("/admin/stats", h.metricsMiddleware("/admin/stats", auth.AdminMiddleware(h.GetStats))).Methods("GET")
}
