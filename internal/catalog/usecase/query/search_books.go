package query

import (
	"context"
	"fmt"

	"github.com/tair/library-management/internal/catalog/domain"
)

// SearchBooksQuery represents the query to search the catalog
type SearchBooksQuery struct {
	Query    string
	Category string
}

// SearchBooksResult bundles the matches with the known categories so
// callers can render a category filter.
type SearchBooksResult struct {
	Books      []BookDetail `json:"books"`
	Categories []string     `json:"categories"`
}

// SearchBooksHandler handles the search books query
type SearchBooksHandler struct {
	repo domain.BookRepository
}

// NewSearchBooksHandler creates a new search books handler
func NewSearchBooksHandler(repo domain.BookRepository) *SearchBooksHandler {
	return &SearchBooksHandler{repo: repo}
}

// Handle executes the search books query
func (h *SearchBooksHandler) Handle(ctx context.Context, q SearchBooksQuery) (*SearchBooksResult, error) {
	books, err := h.repo.Search(ctx, q.Query, q.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}

	categories, err := h.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	details := make([]BookDetail, 0, len(books))
	for _, book := range books {
		details = append(details, BookDetail{Book: book, AverageRating: book.AverageRating()})
	}

	return &SearchBooksResult{Books: details, Categories: categories}, nil
}
