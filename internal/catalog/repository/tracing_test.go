package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tair/library-management/internal/catalog/domain"
)

func TestTracingRepositoryServesTheInterface(t *testing.T) {
	var repo domain.BookRepository = NewGormBookRepositoryWithTracing(nil)
	assert.NotNil(t, repo)
}
