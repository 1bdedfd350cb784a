package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tair/library-management/internal/ledger/domain"
)

func TestTracingRepositoryServesTheInterface(t *testing.T) {
	var repo domain.BorrowRecordRepository = NewGormBorrowRecordRepositoryWithTracing(nil)
	assert.NotNil(t, repo)
}
