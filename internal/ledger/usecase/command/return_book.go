package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tair/library-management/internal/ledger/domain"
	"github.com/tair/library-management/pkg/auth"
)

// ReturnBookCommand represents the command to return a borrowed book
type ReturnBookCommand struct {
	RecordID  uint
	Actor     auth.Identity
	FeePerDay int64
}

// ReturnBookResult reports the outcome of a return. AlreadyReturned is a
// non-error signal: the record had been returned before and nothing was
// touched.
type ReturnBookResult struct {
	Record          *domain.BorrowRecord `json:"record"`
	AlreadyReturned bool                 `json:"already_returned"`
}

// ReturnBookHandler handles the return book command
type ReturnBookHandler struct {
	repo domain.BorrowRecordRepository
	now  func() time.Time
}

// NewReturnBookHandler creates a new return book handler
func NewReturnBookHandler(repo domain.BorrowRecordRepository) *ReturnBookHandler {
	return &ReturnBookHandler{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// NewReturnBookHandlerWithClock creates a handler with an injected clock,
// used by tests.
func NewReturnBookHandlerWithClock(repo domain.BorrowRecordRepository, now func() time.Time) *ReturnBookHandler {
	return &ReturnBookHandler{repo: repo, now: now}
}

// Handle executes the return book command. Only the record's owner or an
// admin may return it. The status update, the final late fee, and the
// availability increment are one atomic unit.
func (h *ReturnBookHandler) Handle(ctx context.Context, cmd ReturnBookCommand) (*ReturnBookResult, error) {
	if cmd.RecordID == 0 {
		return nil, fmt.Errorf("record_id is required")
	}

	record, err := h.repo.FindByID(ctx, cmd.RecordID)
	if err != nil {
		return nil, err
	}

	if record.UserID != cmd.Actor.UserID && !cmd.Actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if record.Status == domain.StatusReturned {
		return &ReturnBookResult{Record: record, AlreadyReturned: true}, nil
	}

	now := h.now()
	record.Status = domain.StatusReturned
	record.ReturnDate = &now
	record.LateFee = domain.LateFee(record.DueDate, now, cmd.FeePerDay)

	if err := h.repo.FinishWithIncrement(ctx, record); err != nil {
		// Lost a race against a concurrent return of the same record.
		if errors.Is(err, domain.ErrAlreadyReturned) {
			current, findErr := h.repo.FindByID(ctx, cmd.RecordID)
			if findErr != nil {
				return nil, findErr
			}
			return &ReturnBookResult{Record: current, AlreadyReturned: true}, nil
		}
		return nil, err
	}

	return &ReturnBookResult{Record: record, AlreadyReturned: false}, nil
}
