package query

import (
	"context"
	"fmt"

	"github.com/tair/library-management/internal/user/domain"
)

// ListUsersQuery represents the query to list accounts
type ListUsersQuery struct {
	Role   string
	Limit  int
	Offset int
}

// ListUsersHandler handles the list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(ctx context.Context, q ListUsersQuery) ([]domain.User, error) {
	if q.Role != "" && !domain.ValidRole(q.Role) {
		return nil, domain.ErrInvalidRole
	}

	users, err := h.repo.FindAll(ctx, q.Role, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
