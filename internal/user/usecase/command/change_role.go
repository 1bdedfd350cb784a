package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/library-management/internal/user/domain"
)

// ChangeRoleCommand represents the command to change an account's role
type ChangeRoleCommand struct {
	UserID uint
	Role   string
}

// ChangeRoleHandler handles role changes
type ChangeRoleHandler struct {
	repo domain.UserRepository
}

// NewChangeRoleHandler creates a new change role handler
func NewChangeRoleHandler(repo domain.UserRepository) *ChangeRoleHandler {
	return &ChangeRoleHandler{repo: repo}
}

// Handle executes the change role command
func (h *ChangeRoleHandler) Handle(ctx context.Context, cmd ChangeRoleCommand) (*domain.User, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if !domain.ValidRole(cmd.Role) {
		return nil, domain.ErrInvalidRole
	}

	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	user.Role = cmd.Role
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	return user, nil
}
