package domain

import "context"

// LibrarySummary aggregates the headline numbers shown on the admin
// dashboard. TotalCopies counts physical copies across all titles;
// BorrowedCopies is how many of them are out right now.
type LibrarySummary struct {
	TotalTitles    int64 `json:"total_titles"`
	TotalCopies    int64 `json:"total_copies"`
	BorrowedCopies int64 `json:"borrowed_copies"`
	ActiveLoans    int64 `json:"active_loans"`
	OverdueLoans   int64 `json:"overdue_loans"`
	TotalMembers   int64 `json:"total_members"`
}

// BookBorrowCount is one row of the most-borrowed-books ranking.
type BookBorrowCount struct {
	BookID      uint   `json:"book_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	BorrowCount int64  `json:"borrow_count"`
}

// ReaderBorrowCount is one row of the most-active-readers ranking.
// Only member accounts are ranked.
type ReaderBorrowCount struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	BorrowCount int64  `json:"borrow_count"`
}

// ReportRepository defines the contract for dashboard aggregation queries
type ReportRepository interface {
	Summary(ctx context.Context) (*LibrarySummary, error)
	TopBooks(ctx context.Context, limit int) ([]BookBorrowCount, error)
	TopReaders(ctx context.Context, limit int) ([]ReaderBorrowCount, error)
}
