package command

import (
	"context"
	"fmt"

	"github.com/tair/library-management/internal/catalog/domain"
)

// AddBookCommand represents the command to add a book to the catalog
type AddBookCommand struct {
	Title       string
	Author      string
	Category    string
	Description string
	CoverURL    string
	Quantity    int
}

// AddBookHandler handles the add book command
type AddBookHandler struct {
	repo domain.BookRepository
}

// NewAddBookHandler creates a new add book handler
func NewAddBookHandler(repo domain.BookRepository) *AddBookHandler {
	return &AddBookHandler{repo: repo}
}

// Handle executes the add book command. Every copy of a freshly added
// title starts available.
func (h *AddBookHandler) Handle(ctx context.Context, cmd AddBookCommand) (*domain.Book, error) {
	if cmd.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if cmd.Author == "" {
		return nil, fmt.Errorf("%w: author is required", domain.ErrInvalidInput)
	}
	if cmd.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}

	book := &domain.Book{
		Title:       cmd.Title,
		Author:      cmd.Author,
		Category:    cmd.Category,
		Description: cmd.Description,
		CoverURL:    cmd.CoverURL,
		Quantity:    cmd.Quantity,
		Available:   cmd.Quantity,
	}

	if err := h.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to add book: %w", err)
	}

	return book, nil
}
