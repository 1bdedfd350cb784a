package query

import (
	"context"
	"fmt"

	"github.com/tair/library-management/internal/user/domain"
)

// GetUserQuery represents the query to fetch one account
type GetUserQuery struct {
	ID uint
}

// GetUserHandler handles the get user query
type GetUserHandler struct {
	repo domain.UserRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(ctx context.Context, q GetUserQuery) (*domain.User, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	return h.repo.FindByID(ctx, q.ID)
}
