package query

import (
	"context"
	"time"

	"github.com/tair/library-management/internal/ledger/domain"
)

// ListOverdueQuery represents the query for overdue records (admin only)
type ListOverdueQuery struct {
	FeePerDay int64
}

// ListOverdueHandler handles the list overdue query
type ListOverdueHandler struct {
	repo domain.BorrowRecordRepository
	now  func() time.Time
}

// NewListOverdueHandler creates a new list overdue handler
func NewListOverdueHandler(repo domain.BorrowRecordRepository) *ListOverdueHandler {
	return &ListOverdueHandler{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// NewListOverdueHandlerWithClock creates a handler with an injected clock
func NewListOverdueHandlerWithClock(repo domain.BorrowRecordRepository, now func() time.Time) *ListOverdueHandler {
	return &ListOverdueHandler{repo: repo, now: now}
}

// Handle executes the list overdue query. Fees are recomputed against now
// on the returned views only; nothing is persisted.
func (h *ListOverdueHandler) Handle(ctx context.Context, q ListOverdueQuery) ([]RecordView, error) {
	now := h.now()
	records, err := h.repo.FindOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	return projectViews(records, now, q.FeePerDay), nil
}
