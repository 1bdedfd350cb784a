package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/library-management/internal/ledger/domain"
)

// BorrowBookCommand represents the command to borrow a book
type BorrowBookCommand struct {
	BookID         uint
	UserID         uint
	LoanPeriodDays int
}

// BorrowBookHandler handles the borrow book command
type BorrowBookHandler struct {
	repo domain.BorrowRecordRepository
	now  func() time.Time
}

// NewBorrowBookHandler creates a new borrow book handler
func NewBorrowBookHandler(repo domain.BorrowRecordRepository) *BorrowBookHandler {
	return &BorrowBookHandler{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// NewBorrowBookHandlerWithClock creates a handler with an injected clock,
// used by tests.
func NewBorrowBookHandlerWithClock(repo domain.BorrowRecordRepository, now func() time.Time) *BorrowBookHandler {
	return &BorrowBookHandler{repo: repo, now: now}
}

// Handle executes the borrow book command. Decrementing the available
// count and inserting the record happen in one transaction; if either
// fails nothing persists.
func (h *BorrowBookHandler) Handle(ctx context.Context, cmd BorrowBookCommand) (*domain.BorrowRecord, error) {
	if cmd.BookID == 0 {
		return nil, fmt.Errorf("book_id is required")
	}
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user_id is required")
	}
	if cmd.LoanPeriodDays < 1 {
		return nil, fmt.Errorf("loan period must be at least 1 day")
	}

	now := h.now()
	record := &domain.BorrowRecord{
		BookID:     cmd.BookID,
		UserID:     cmd.UserID,
		BorrowDate: now,
		DueDate:    now.Add(time.Duration(cmd.LoanPeriodDays) * 24 * time.Hour),
		Status:     domain.StatusBorrowing,
	}

	if err := h.repo.CreateWithDecrement(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}
