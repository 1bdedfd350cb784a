package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tair/library-management/internal/user/domain"
	"github.com/tair/library-management/pkg/auth"
)

// UpdateProfileCommand represents the command to update an account's
// profile. Empty fields are left unchanged.
type UpdateProfileCommand struct {
	UserID   uint
	Email    string
	FullName string
	Password string
}

// UpdateProfileHandler handles profile updates
type UpdateProfileHandler struct {
	repo domain.UserRepository
}

// NewUpdateProfileHandler creates a new update profile handler
func NewUpdateProfileHandler(repo domain.UserRepository) *UpdateProfileHandler {
	return &UpdateProfileHandler{repo: repo}
}

// Handle executes the update profile command
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*domain.User, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}

	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Email != "" && cmd.Email != user.Email {
		if existing, err := h.repo.FindByEmail(ctx, cmd.Email); err == nil && existing.ID != user.ID {
			return nil, domain.ErrEmailTaken
		} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = cmd.Email
	}
	if cmd.FullName != "" {
		user.FullName = cmd.FullName
	}
	if cmd.Password != "" {
		if len(cmd.Password) < 6 {
			return nil, fmt.Errorf("password must be at least 6 characters")
		}
		hashed, err := auth.HashPassword(cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashed
	}
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
