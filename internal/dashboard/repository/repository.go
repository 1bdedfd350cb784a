package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	catalog "github.com/tair/library-management/internal/catalog/domain"
	"github.com/tair/library-management/internal/dashboard/domain"
	ledger "github.com/tair/library-management/internal/ledger/domain"
	user "github.com/tair/library-management/internal/user/domain"
)

// GormReportRepository implements ReportRepository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GORM report repository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Summary computes the headline dashboard numbers in one pass per table.
func (r *GormReportRepository) Summary(ctx context.Context) (*domain.LibrarySummary, error) {
	var summary domain.LibrarySummary

	db := r.db.WithContext(ctx)

	if err := db.Model(&catalog.Book{}).Count(&summary.TotalTitles).Error; err != nil {
		return nil, fmt.Errorf("failed to count titles: %w", err)
	}

	var stock struct {
		TotalCopies    int64
		BorrowedCopies int64
	}
	err := db.Model(&catalog.Book{}).
		Select("COALESCE(SUM(quantity), 0) AS total_copies, COALESCE(SUM(quantity - available), 0) AS borrowed_copies").
		Scan(&stock).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum stock: %w", err)
	}
	summary.TotalCopies = stock.TotalCopies
	summary.BorrowedCopies = stock.BorrowedCopies

	err = db.Model(&ledger.BorrowRecord{}).
		Where("status = ?", ledger.StatusBorrowing).
		Count(&summary.ActiveLoans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active loans: %w", err)
	}

	err = db.Model(&ledger.BorrowRecord{}).
		Where("status = ? AND due_date < ?", ledger.StatusBorrowing, time.Now()).
		Count(&summary.OverdueLoans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue loans: %w", err)
	}

	err = db.Model(&user.User{}).
		Where("role = ?", user.RoleMember).
		Count(&summary.TotalMembers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	return &summary, nil
}

// TopBooks ranks titles by how often they have been borrowed, ties broken
// by ID so the ordering is stable.
func (r *GormReportRepository) TopBooks(ctx context.Context, limit int) ([]domain.BookBorrowCount, error) {
	var rows []domain.BookBorrowCount
	err := r.db.WithContext(ctx).Table("books").
		Select("books.id AS book_id, books.title, books.author, COUNT(borrow_records.id) AS borrow_count").
		Joins("JOIN borrow_records ON borrow_records.book_id = books.id").
		Where("books.deleted_at IS NULL").
		Group("books.id, books.title, books.author").
		Order("borrow_count DESC, books.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank books: %w", err)
	}
	return rows, nil
}

// TopReaders ranks member accounts by borrow count. Admin accounts are
// excluded even when they have borrow history.
func (r *GormReportRepository) TopReaders(ctx context.Context, limit int) ([]domain.ReaderBorrowCount, error) {
	var rows []domain.ReaderBorrowCount
	err := r.db.WithContext(ctx).Table("users").
		Select("users.id AS user_id, users.username, users.full_name, COUNT(borrow_records.id) AS borrow_count").
		Joins("JOIN borrow_records ON borrow_records.user_id = users.id").
		Where("users.role = ? AND users.deleted_at IS NULL", user.RoleMember).
		Group("users.id, users.username, users.full_name").
		Order("borrow_count DESC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank readers: %w", err)
	}
	return rows, nil
}
