package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tair/library-management/internal/user/domain"
)

func TestTracingRepositoryServesTheInterface(t *testing.T) {
	var repo domain.UserRepository = NewGormUserRepositoryWithTracing(nil)
	assert.NotNil(t, repo)
}
