package query

import (
	"context"
	"fmt"

	"github.com/tair/library-management/internal/rating/domain"
)

// AverageRatingQuery represents the query for a book's average score
type AverageRatingQuery struct {
	BookID uint
}

// AverageRatingResult carries the mean score (one decimal place) and the
// number of ratings behind it; Average is 0 when Count is 0.
type AverageRatingResult struct {
	BookID  uint    `json:"book_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// AverageRatingHandler handles the average rating query
type AverageRatingHandler struct {
	repo domain.RatingRepository
}

// NewAverageRatingHandler creates a new average rating handler
func NewAverageRatingHandler(repo domain.RatingRepository) *AverageRatingHandler {
	return &AverageRatingHandler{repo: repo}
}

// Handle executes the average rating query
func (h *AverageRatingHandler) Handle(ctx context.Context, q AverageRatingQuery) (*AverageRatingResult, error) {
	if q.BookID == 0 {
		return nil, fmt.Errorf("book_id is required")
	}

	average, count, err := h.repo.AverageForBook(ctx, q.BookID)
	if err != nil {
		return nil, err
	}

	return &AverageRatingResult{BookID: q.BookID, Average: average, Count: count}, nil
}
