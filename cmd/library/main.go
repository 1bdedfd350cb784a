package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cataloghttp "github.com/tair/library-management/internal/catalog/delivery/http"
	catalogdomain "github.com/tair/library-management/internal/catalog/domain"
	catalogrepo "github.com/tair/library-management/internal/catalog/repository"
	dashboardhttp "github.com/tair/library-management/internal/dashboard/delivery/http"
	dashboardrepo "github.com/tair/library-management/internal/dashboard/repository"
	ledgerhttp "github.com/tair/library-management/internal/ledger/delivery/http"
	ledgerdomain "github.com/tair/library-management/internal/ledger/domain"
	ledgerrepo "github.com/tair/library-management/internal/ledger/repository"
	ratinghttp "github.com/tair/library-management/internal/rating/delivery/http"
	ratingrepo "github.com/tair/library-management/internal/rating/repository"
	userhttp "github.com/tair/library-management/internal/user/delivery/http"
	userdomain "github.com/tair/library-management/internal/user/domain"
	userrepo "github.com/tair/library-management/internal/user/repository"
	"github.com/tair/library-management/kafka"
	"github.com/tair/library-management/pkg/database"
	"github.com/tair/library-management/pkg/logger"
	"github.com/tair/library-management/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "library-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting library service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "librarydb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Health checks ping a dedicated connection so a saturated
	// application pool never masquerades as a database outage
	healthDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open health check connection")
	}
	defer healthDB.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&userdomain.User{},
		&catalogdomain.Book{},
		&ledgerdomain.BorrowRecord{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Seed default accounts and catalog on first boot
	if err := seed(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed database")
	}

	// Lending policy, overridable per deployment
	ledgerConfig := ledgerhttp.DefaultConfig()
	if days := getEnvInt("LOAN_PERIOD_DAYS", 0); days > 0 {
		ledgerConfig.LoanPeriodDays = days
	}
	if fee := getEnvInt("LATE_FEE_PER_DAY", 0); fee > 0 {
		ledgerConfig.FeePerDay = int64(fee)
	}

	// Kafka is optional; without brokers the ledger simply skips events
	var publisher *kafka.Publisher
	var consumer *kafka.Consumer
	if brokersEnv := os.Getenv("KAFKA_BROKERS"); brokersEnv != "" {
		brokers := strings.Split(brokersEnv, ",")

		publisher, err = kafka.NewPublisher(brokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer publisher.Close()

		consumer = startAuditConsumer(brokers)
		if consumer != nil {
			defer consumer.Close()
		}
	}

	// Repositories; the catalog, ledger and user ones emit spans around
	// their hot paths
	bookRepo := catalogrepo.NewGormBookRepositoryWithTracing(db)
	recordRepo := ledgerrepo.NewGormBorrowRecordRepositoryWithTracing(db)
	ratingRepo := ratingrepo.NewGormRatingRepository(db)
	reportRepo := dashboardrepo.NewGormReportRepository(db)
	accountRepo := userrepo.NewGormUserRepositoryWithTracing(db)

	// HTTP handlers
	bookHandler := cataloghttp.NewBookHandler(bookRepo)
	ledgerHandler := ledgerhttp.NewLedgerHandler(recordRepo, ledgerConfig, publisher)
	ratingHandler := ratinghttp.NewRatingHandler(ratingRepo)
	dashboardHandler := dashboardhttp.NewDashboardHandler(reportRepo)
	userHandler := userhttp.NewUserHandler(accountRepo)

	router := mux.NewRouter()
	userHandler.RegisterRoutes(router)
	bookHandler.RegisterRoutes(router)
	ledgerHandler.RegisterRoutes(router)
	ratingHandler.RegisterRoutes(router)
	dashboardHandler.RegisterRoutes(router)

	// Swagger UI
	cataloghttp.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	// Health check endpoint
	router.HandleFunc("/health", healthCheck(healthDB)).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/index.html").
			Msg("HTTP server started")

		handler := otelhttp.NewHandler(c.Handler(router), "library-http")
		if err := http.ListenAndServe(":"+httpPort, handler); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

// startAuditConsumer logs finished loans from the event stream. Running it
// in the same process keeps the deployment simple; a separate audit
// service can join the same topics later.
func startAuditConsumer(brokers []string) *kafka.Consumer {
	consumer, err := kafka.NewConsumer(brokers, "library-audit", []string{kafka.TopicBookReturned})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create Kafka consumer")
		return nil
	}

	consumer.RegisterHandler(kafka.EventTypeBookReturned, func(ctx context.Context, payload []byte) error {
		var event kafka.BookReturnedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return err
		}
		logger.Info(ctx).
			Uint("record_id", event.RecordID).
			Uint("book_id", event.BookID).
			Uint("user_id", event.UserID).
			Int64("late_fee", event.LateFee).
			Time("return_date", event.ReturnDate).
			Msg("Loan closed")
		return nil
	})

	if err := consumer.Start(context.Background()); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
		return nil
	}
	return consumer
}

func healthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
