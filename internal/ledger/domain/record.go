package domain

import (
	"context"
	"errors"
	"time"
)

// Record statuses. The only transition is borrowing -> returned.
const (
	StatusBorrowing = "borrowing"
	StatusReturned  = "returned"
)

// Ledger errors, matched by callers with errors.Is.
var (
	ErrRecordNotFound  = errors.New("borrow record not found")
	ErrForbidden       = errors.New("caller may not act on this record")
	ErrAlreadyReturned = errors.New("record already returned")
)

// BorrowRecord tracks one loan of one copy of a book. BorrowDate and
// DueDate are fixed at creation; ReturnDate and Status change exactly once,
// at return time. Rating and Review are only ever set on returned records.
type BorrowRecord struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	BookID     uint       `json:"book_id" gorm:"not null;index"`
	UserID     uint       `json:"user_id" gorm:"not null;index"`
	BorrowDate time.Time  `json:"borrow_date" gorm:"not null"`
	DueDate    time.Time  `json:"due_date" gorm:"not null"`
	ReturnDate *time.Time `json:"return_date"`
	Status     string     `json:"status" gorm:"not null;default:'borrowing';index"`
	LateFee    int64      `json:"late_fee" gorm:"not null;default:0"`
	Rating     *int       `json:"rating"`
	Review     string     `json:"review"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (BorrowRecord) TableName() string {
	return "borrow_records"
}

// LateFee computes the penalty for returning after the due date: whole
// days late times the per-day rate, partial days do not count. Returns 0
// when returnedAt is on or before the due date.
func LateFee(dueDate, returnedAt time.Time, feePerDay int64) int64 {
	if !returnedAt.After(dueDate) {
		return 0
	}
	days := int64(returnedAt.Sub(dueDate) / (24 * time.Hour))
	return days * feePerDay
}

// CurrentLateFee evaluates the fee for this record at the given instant.
// For returned records the persisted return date is used; for active
// records the fee is a live figure against now and must not be persisted.
func (r *BorrowRecord) CurrentLateFee(now time.Time, feePerDay int64) int64 {
	if r.Status == StatusReturned && r.ReturnDate != nil {
		return LateFee(r.DueDate, *r.ReturnDate, feePerDay)
	}
	return LateFee(r.DueDate, now, feePerDay)
}

// IsOverdue reports whether an active record is past its due date.
func (r *BorrowRecord) IsOverdue(now time.Time) bool {
	return r.Status == StatusBorrowing && now.After(r.DueDate)
}

// DaysUntilDue returns whole days remaining before the due date for an
// active record; negative when overdue, 0 for returned records. The
// division floors, so a record 1.5 days overdue reports -2, not -1.
func (r *BorrowRecord) DaysUntilDue(now time.Time) int {
	if r.Status != StatusBorrowing {
		return 0
	}
	remaining := r.DueDate.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining < 0 && remaining%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// BorrowRecordRepository defines the contract for ledger data access.
// CreateWithDecrement and FinishWithIncrement each run as one transaction
// together with the book availability adjustment they imply.
type BorrowRecordRepository interface {
	CreateWithDecrement(ctx context.Context, record *BorrowRecord) error
	FinishWithIncrement(ctx context.Context, record *BorrowRecord) error
	FindByID(ctx context.Context, id uint) (*BorrowRecord, error)
	FindByUserID(ctx context.Context, userID uint) ([]BorrowRecord, error)
	FindAll(ctx context.Context) ([]BorrowRecord, error)
	FindOverdue(ctx context.Context, now time.Time) ([]BorrowRecord, error)
	CountActive(ctx context.Context) (int64, error)
	CountActiveByBookID(ctx context.Context, bookID uint) (int64, error)
}
