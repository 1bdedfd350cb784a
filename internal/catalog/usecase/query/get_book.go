package query

import (
	"context"
	"fmt"

	"github.com/tair/library-management/internal/catalog/domain"
)

// GetBookQuery represents the query to get a book by ID
type GetBookQuery struct {
	ID uint
}

// BookDetail is a book together with its derived rating average
type BookDetail struct {
	domain.Book
	AverageRating float64 `json:"average_rating"`
}

// GetBookHandler handles the get book query
type GetBookHandler struct {
	repo domain.BookRepository
}

// NewGetBookHandler creates a new get book handler
func NewGetBookHandler(repo domain.BookRepository) *GetBookHandler {
	return &GetBookHandler{repo: repo}
}

// Handle executes the get book query
func (h *GetBookHandler) Handle(ctx context.Context, q GetBookQuery) (*BookDetail, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("%w: book id is required", domain.ErrInvalidInput)
	}

	book, err := h.repo.FindByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	return &BookDetail{Book: *book, AverageRating: book.AverageRating()}, nil
}
