package query

import (
	"context"
	"fmt"

	"github.com/tair/library-management/internal/catalog/domain"
)

// ListLatestQuery represents the query for the newest books
type ListLatestQuery struct {
	Limit int
}

// ListLatestHandler handles the list latest query
type ListLatestHandler struct {
	repo domain.BookRepository
}

// NewListLatestHandler creates a new list latest handler
func NewListLatestHandler(repo domain.BookRepository) *ListLatestHandler {
	return &ListLatestHandler{repo: repo}
}

// Handle executes the list latest query
func (h *ListLatestHandler) Handle(ctx context.Context, q ListLatestQuery) ([]BookDetail, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 6
	}

	books, err := h.repo.FindLatest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest books: %w", err)
	}

	details := make([]BookDetail, 0, len(books))
	for _, book := range books {
		details = append(details, BookDetail{Book: book, AverageRating: book.AverageRating()})
	}
	return details, nil
}
