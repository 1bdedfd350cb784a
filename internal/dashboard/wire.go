//go:build wireinject
// +build wireinject

package dashboard

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/library-management/internal/dashboard/delivery/http"
	"github.com/tair/library-management/internal/dashboard/domain"
	"github.com/tair/library-management/internal/dashboard/repository"
)

// ProvideReportRepository provides the report repository
func ProvideReportRepository(db *gorm.DB) domain.ReportRepository {
	return repository.NewGormReportRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideReportRepository,
)

// InitializeHTTPHandler initializes the dashboard HTTP handler
func InitializeHTTPHandler(db *gorm.DB) (*http.DashboardHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewDashboardHandler,
	)
	return nil, nil
}
