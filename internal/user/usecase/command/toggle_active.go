package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/library-management/internal/user/domain"
)

// ToggleActiveCommand represents the command to enable or disable an account
type ToggleActiveCommand struct {
	UserID   uint
	IsActive bool
}

// ToggleActiveHandler handles account activation changes
type ToggleActiveHandler struct {
	repo domain.UserRepository
}

// NewToggleActiveHandler creates a new toggle active handler
func NewToggleActiveHandler(repo domain.UserRepository) *ToggleActiveHandler {
	return &ToggleActiveHandler{repo: repo}
}

// Handle executes the toggle active command. A disabled account keeps its
// borrow history but can no longer log in.
func (h *ToggleActiveHandler) Handle(ctx context.Context, cmd ToggleActiveCommand) (*domain.User, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}

	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	user.IsActive = cmd.IsActive
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
