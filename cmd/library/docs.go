package main

// @title Library Management API
// @version 1.0
// @description Library catalog, borrowing ledger, ratings and admin dashboard with full observability stack (Prometheus, Jaeger)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/tair/library-management
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/tair/library-management/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Books
// @tag.description Catalog endpoints

// @tag.name Borrows
// @tag.description Borrowing ledger endpoints

// @tag.name Ratings
// @tag.description Rating and review endpoints

// @tag.name Users
// @tag.description Account directory endpoints

// @tag.name Dashboard
// @tag.description Admin dashboard endpoints
