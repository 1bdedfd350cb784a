//go:build wireinject
// +build wireinject

package rating

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/library-management/internal/rating/delivery/http"
	"github.com/tair/library-management/internal/rating/domain"
	"github.com/tair/library-management/internal/rating/repository"
)

// ProvideRatingRepository provides the rating repository
func ProvideRatingRepository(db *gorm.DB) domain.RatingRepository {
	return repository.NewGormRatingRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideRatingRepository,
)

// InitializeHTTPHandler initializes the rating HTTP handler
func InitializeHTTPHandler(db *gorm.DB) (*http.RatingHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewRatingHandler,
	)
	return nil, nil
}
