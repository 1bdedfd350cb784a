package query

import (
	"context"
	"fmt"

	"github.com/tair/library-management/internal/rating/domain"
)

// ListReviewsQuery represents the query for a book's reviews
type ListReviewsQuery struct {
	BookID uint
	Limit  int
}

// ListReviewsHandler handles the list reviews query
type ListReviewsHandler struct {
	repo domain.RatingRepository
}

// NewListReviewsHandler creates a new list reviews handler
func NewListReviewsHandler(repo domain.RatingRepository) *ListReviewsHandler {
	return &ListReviewsHandler{repo: repo}
}

// Handle executes the list reviews query
func (h *ListReviewsHandler) Handle(ctx context.Context, q ListReviewsQuery) ([]domain.Review, error) {
	if q.BookID == 0 {
		return nil, fmt.Errorf("book_id is required")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	reviews, err := h.repo.FindReviewsByBookID(ctx, q.BookID, limit)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
