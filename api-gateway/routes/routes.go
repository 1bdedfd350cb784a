package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tair/library-management/api-gateway/config"
	"github.com/tair/library-management/api-gateway/health"
	"github.com/tair/library-management/api-gateway/middleware"
	"github.com/tair/library-management/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix       string
	ServiceName  string
	Description  string
	RequireAuth  bool
	RequireAdmin bool
}

// Routes holds all route definitions. The catalog stays public at the
// gateway; the service itself rejects unauthenticated writes.
var Routes = []RouteDefinition{
	{
		Prefix:      "/auth",
		ServiceName: "library",
		Description: "Authentication endpoints (login, register)",
	},
	{
		Prefix:      "/api/books",
		ServiceName: "library",
		Description: "Catalog browsing, ratings and reviews",
	},
	{
		Prefix:      "/api/borrows",
		ServiceName: "library",
		Description: "Borrowing ledger",
		RequireAuth: true,
	},
	{
		Prefix:      "/users",
		ServiceName: "library",
		Description: "Own profile",
		RequireAuth: true,
	},
	{
		Prefix:       "/api/dashboard",
		ServiceName:  "library",
		Description:  "Admin dashboard",
		RequireAuth:  true,
		RequireAdmin: true,
	},
	{
		Prefix:       "/admin",
		ServiceName:  "library",
		Description:  "Account administration",
		RequireAuth:  true,
		RequireAdmin: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks downstream instances)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed instance health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)
		return c.JSON(healthStatus)
	})

	// Circuit breaker state, for operators
	app.Get("/gateway/circuits", func(c *fiber.Ctx) error {
		return c.JSON(cbManager.GetAllStats())
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Library API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	var middlewares []fiber.Handler

	if route.RequireAdmin {
		middlewares = append(middlewares, middleware.AuthMiddleware(), middleware.AdminMiddleware())
	} else if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
