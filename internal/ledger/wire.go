//go:build wireinject
// +build wireinject

package ledger

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/library-management/internal/ledger/delivery/http"
	"github.com/tair/library-management/internal/ledger/domain"
	"github.com/tair/library-management/internal/ledger/repository"
	"github.com/tair/library-management/kafka"
)

// ProvideBorrowRecordRepository provides the ledger repository, traced
func ProvideBorrowRecordRepository(db *gorm.DB) domain.BorrowRecordRepository {
	return repository.NewGormBorrowRecordRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideBorrowRecordRepository,
)

// InitializeHTTPHandler initializes the ledger HTTP handler
func InitializeHTTPHandler(db *gorm.DB, config http.Config, publisher *kafka.Publisher) (*http.LedgerHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewLedgerHandler,
	)
	return nil, nil
}
