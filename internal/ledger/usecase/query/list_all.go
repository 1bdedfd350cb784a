package query

import (
	"context"
	"time"

	"github.com/tair/library-management/internal/ledger/domain"
)

// ListAllQuery represents the query for every borrow record (admin only)
type ListAllQuery struct {
	FeePerDay int64
}

// ListAllHandler handles the list all query
type ListAllHandler struct {
	repo domain.BorrowRecordRepository
	now  func() time.Time
}

// NewListAllHandler creates a new list all handler
func NewListAllHandler(repo domain.BorrowRecordRepository) *ListAllHandler {
	return &ListAllHandler{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// NewListAllHandlerWithClock creates a handler with an injected clock
func NewListAllHandlerWithClock(repo domain.BorrowRecordRepository, now func() time.Time) *ListAllHandler {
	return &ListAllHandler{repo: repo, now: now}
}

// Handle executes the list all query
func (h *ListAllHandler) Handle(ctx context.Context, q ListAllQuery) ([]RecordView, error) {
	records, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return projectViews(records, h.now(), q.FeePerDay), nil
}
