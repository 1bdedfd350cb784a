//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/library-management/internal/user/delivery/http"
	"github.com/tair/library-management/internal/user/domain"
	"github.com/tair/library-management/internal/user/repository"
)

// ProvideUserRepository provides the user repository, traced
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepositoryWithTracing(db)
}

var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

// InitializeHTTPHandler initializes the user HTTP handler
func InitializeHTTPHandler(db *gorm.DB) (*http.UserHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewUserHandler,
	)
	return nil, nil
}
