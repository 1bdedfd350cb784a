package query

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/library-management/internal/ledger/domain"
)

// ListForUserQuery represents the query for one user's borrow records
type ListForUserQuery struct {
	UserID    uint
	FeePerDay int64
}

// RecordView is a borrow record with its live late fee and remaining days.
// For active records the fee is recomputed against now on every query and
// never written back.
type RecordView struct {
	domain.BorrowRecord
	LiveLateFee  int64 `json:"live_late_fee"`
	DaysUntilDue int   `json:"days_until_due"`
	Overdue      bool  `json:"overdue"`
}

// ListForUserHandler handles the list for user query
type ListForUserHandler struct {
	repo domain.BorrowRecordRepository
	now  func() time.Time
}

// NewListForUserHandler creates a new list for user handler
func NewListForUserHandler(repo domain.BorrowRecordRepository) *ListForUserHandler {
	return &ListForUserHandler{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// NewListForUserHandlerWithClock creates a handler with an injected clock
func NewListForUserHandlerWithClock(repo domain.BorrowRecordRepository, now func() time.Time) *ListForUserHandler {
	return &ListForUserHandler{repo: repo, now: now}
}

// Handle executes the list for user query
func (h *ListForUserHandler) Handle(ctx context.Context, q ListForUserQuery) ([]RecordView, error) {
	if q.UserID == 0 {
		return nil, fmt.Errorf("user_id is required")
	}

	records, err := h.repo.FindByUserID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	return projectViews(records, h.now(), q.FeePerDay), nil
}

// projectViews stamps live fees onto in-memory copies of the records.
func projectViews(records []domain.BorrowRecord, now time.Time, feePerDay int64) []RecordView {
	views := make([]RecordView, 0, len(records))
	for _, record := range records {
		views = append(views, RecordView{
			BorrowRecord: record,
			LiveLateFee:  record.CurrentLateFee(now, feePerDay),
			DaysUntilDue: record.DaysUntilDue(now),
			Overdue:      record.IsOverdue(now),
		})
	}
	return views
}
