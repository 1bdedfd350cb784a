package command

import (
	"context"
	"fmt"

	"github.com/tair/library-management/internal/catalog/domain"
)

// EditBookCommand represents the command to edit a book
type EditBookCommand struct {
	ID          uint
	Title       string
	Author      string
	Category    string
	Description string
	CoverURL    string
	Quantity    int
}

// EditBookHandler handles the edit book command
type EditBookHandler struct {
	repo domain.BookRepository
}

// NewEditBookHandler creates a new edit book handler
func NewEditBookHandler(repo domain.BookRepository) *EditBookHandler {
	return &EditBookHandler{repo: repo}
}

// Handle executes the edit book command. Descriptive fields are replaced
// outright; resizing the stock rescales the available count so the
// fraction of copies on loan is preserved.
func (h *EditBookHandler) Handle(ctx context.Context, cmd EditBookCommand) (*domain.Book, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("%w: book id is required", domain.ErrInvalidInput)
	}
	if cmd.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if cmd.Author == "" {
		return nil, fmt.Errorf("%w: author is required", domain.ErrInvalidInput)
	}
	if cmd.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}

	book, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	book.Title = cmd.Title
	book.Author = cmd.Author
	book.Category = cmd.Category
	book.Description = cmd.Description
	if cmd.CoverURL != "" {
		book.CoverURL = cmd.CoverURL
	}

	if cmd.Quantity != book.Quantity {
		book.Available = domain.RescaleAvailable(book.Quantity, cmd.Quantity, book.Available)
		book.Quantity = cmd.Quantity
	}

	if err := h.repo.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to edit book: %w", err)
	}

	return book, nil
}
