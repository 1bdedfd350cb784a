package command

import (
	"context"
	"fmt"

	"github.com/tair/library-management/internal/catalog/domain"
)

// DeleteBookCommand represents the command to delete a book
type DeleteBookCommand struct {
	ID uint
}

// DeleteBookHandler handles the delete book command
type DeleteBookHandler struct {
	repo domain.BookRepository
}

// NewDeleteBookHandler creates a new delete book handler
func NewDeleteBookHandler(repo domain.BookRepository) *DeleteBookHandler {
	return &DeleteBookHandler{repo: repo}
}

// Handle executes the delete book command. Deletion is refused while any
// copy is still on loan.
func (h *DeleteBookHandler) Handle(ctx context.Context, cmd DeleteBookCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("%w: book id is required", domain.ErrInvalidInput)
	}

	if err := h.repo.Delete(ctx, cmd.ID); err != nil {
		return err
	}
	return nil
}
