package command

import (
	"context"
	"fmt"

	"github.com/tair/library-management/internal/rating/domain"
	"github.com/tair/library-management/pkg/auth"
)

// RateBookCommand represents the command to rate a returned borrow record
type RateBookCommand struct {
	RecordID uint
	Actor    auth.Identity
	Score    int
	Review   string
}

// RateBookHandler handles the rate book command
type RateBookHandler struct {
	repo domain.RatingRepository
}

// NewRateBookHandler creates a new rate book handler
func NewRateBookHandler(repo domain.RatingRepository) *RateBookHandler {
	return &RateBookHandler{repo: repo}
}

// Handle executes the rate book command. Only the owner of a returned
// record may rate it; rating again replaces the earlier score so a record
// contributes at most once to the book's average.
func (h *RateBookHandler) Handle(ctx context.Context, cmd RateBookCommand) error {
	if cmd.RecordID == 0 {
		return fmt.Errorf("record_id is required")
	}
	if !domain.ValidScore(cmd.Score) {
		return domain.ErrInvalidScore
	}

	if err := h.repo.Apply(ctx, cmd.RecordID, cmd.Actor.UserID, cmd.Score, cmd.Review); err != nil {
		return err
	}
	return nil
}
