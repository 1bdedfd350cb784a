package query

import (
	"context"
	"fmt"

	"github.com/tair/library-management/internal/user/domain"
)

// GetStatsQuery represents the query for account directory statistics
type GetStatsQuery struct{}

// UserStats represents account directory statistics
type UserStats struct {
	TotalAccounts  int64 `json:"total_accounts"`
	AdminCount     int64 `json:"admin_count"`
	MemberCount    int64 `json:"member_count"`
	ActiveAccounts int64 `json:"active_accounts"`
}

// GetStatsHandler handles the get stats query
type GetStatsHandler struct {
	repo domain.UserRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.UserRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context, q GetStatsQuery) (*UserStats, error) {
	total, err := h.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}

	admins, err := h.repo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}

	members, err := h.repo.CountByRole(ctx, domain.RoleMember)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	active, err := h.repo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active accounts: %w", err)
	}

	return &UserStats{
		TotalAccounts:  total,
		AdminCount:     admins,
		MemberCount:    members,
		ActiveAccounts: active,
	}, nil
}
