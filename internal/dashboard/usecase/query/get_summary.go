package query

import (
	"context"
	"fmt"

	"github.com/tair/library-management/internal/dashboard/domain"
)

// DefaultRankingSize is how many rows each dashboard ranking carries.
const DefaultRankingSize = 5

// GetSummaryQuery represents the query for the admin dashboard
type GetSummaryQuery struct {
	RankingSize int
}

// DashboardReport is the full dashboard payload: headline numbers plus
// the two rankings.
type DashboardReport struct {
	Summary    *domain.LibrarySummary     `json:"summary"`
	TopBooks   []domain.BookBorrowCount   `json:"top_books"`
	TopReaders []domain.ReaderBorrowCount `json:"top_readers"`
}

// GetSummaryHandler handles the dashboard summary query
type GetSummaryHandler struct {
	repo domain.ReportRepository
}

// NewGetSummaryHandler creates a new get summary handler
func NewGetSummaryHandler(repo domain.ReportRepository) *GetSummaryHandler {
	return &GetSummaryHandler{repo: repo}
}

// Handle executes the dashboard summary query
func (h *GetSummaryHandler) Handle(ctx context.Context, q GetSummaryQuery) (*DashboardReport, error) {
	size := q.RankingSize
	if size <= 0 {
		size = DefaultRankingSize
	}

	summary, err := h.repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	topBooks, err := h.repo.TopBooks(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("failed to rank books: %w", err)
	}

	topReaders, err := h.repo.TopReaders(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("failed to rank readers: %w", err)
	}

	return &DashboardReport{
		Summary:    summary,
		TopBooks:   topBooks,
		TopReaders: topReaders,
	}, nil
}
