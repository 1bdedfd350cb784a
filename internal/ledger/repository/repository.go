package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	catalogrepo "github.com/tair/library-management/internal/catalog/repository"
	"github.com/tair/library-management/internal/ledger/domain"
)

// GormBorrowRecordRepository implements BorrowRecordRepository using GORM
type GormBorrowRecordRepository struct {
	db *gorm.DB
}

// NewGormBorrowRecordRepository creates a new GORM borrow record repository
func NewGormBorrowRecordRepository(db *gorm.DB) *GormBorrowRecordRepository {
	return &GormBorrowRecordRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormBorrowRecordRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.BorrowRecord{})
}

// CreateWithDecrement inserts a borrow record and takes one copy off the
// shelf in a single transaction. If no copy is available the insert never
// happens and ErrNoCopiesAvailable surfaces from the catalog side.
func (r *GormBorrowRecordRepository) CreateWithDecrement(ctx context.Context, record *domain.BorrowRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := catalogrepo.DecrementAvailable(tx, record.BookID); err != nil {
			return err
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create borrow record: %w", err)
		}
		return nil
	})
}

// FinishWithIncrement marks a record returned and puts the copy back in a
// single transaction. The status guard in the UPDATE makes concurrent
// returns of the same record a one-winner race; losers see
// ErrAlreadyReturned and no second increment occurs.
func (r *GormBorrowRecordRepository) FinishWithIncrement(ctx context.Context, record *domain.BorrowRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.BorrowRecord{}).
			Where("id = ? AND status = ?", record.ID, domain.StatusBorrowing).
			Updates(map[string]interface{}{
				"status":      domain.StatusReturned,
				"return_date": record.ReturnDate,
				"late_fee":    record.LateFee,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update borrow record: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrAlreadyReturned
		}

		if err := catalogrepo.IncrementAvailable(tx, record.BookID); err != nil {
			return err
		}
		return nil
	})
}

// FindByID retrieves a borrow record by ID
func (r *GormBorrowRecordRepository) FindByID(ctx context.Context, id uint) (*domain.BorrowRecord, error) {
	var record domain.BorrowRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find borrow record: %w", err)
	}
	return &record, nil
}

// FindByUserID retrieves a user's borrow records, newest first
func (r *GormBorrowRecordRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.BorrowRecord, error) {
	var records []domain.BorrowRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("borrow_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find borrow records: %w", err)
	}
	return records, nil
}

// FindAll retrieves every borrow record, newest first
func (r *GormBorrowRecordRepository) FindAll(ctx context.Context) ([]domain.BorrowRecord, error) {
	var records []domain.BorrowRecord
	if err := r.db.WithContext(ctx).Order("borrow_date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find borrow records: %w", err)
	}
	return records, nil
}

// FindOverdue retrieves active records whose due date has passed
func (r *GormBorrowRecordRepository) FindOverdue(ctx context.Context, now time.Time) ([]domain.BorrowRecord, error) {
	var records []domain.BorrowRecord
	err := r.db.WithContext(ctx).Where("status = ? AND due_date < ?", domain.StatusBorrowing, now).
		Order("due_date").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find overdue records: %w", err)
	}
	return records, nil
}

// CountActive returns the number of records still borrowing
func (r *GormBorrowRecordRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.BorrowRecord{}).
		Where("status = ?", domain.StatusBorrowing).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active borrows: %w", err)
	}
	return count, nil
}

// CountActiveByBookID returns the number of active borrows for one book
func (r *GormBorrowRecordRepository) CountActiveByBookID(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.BorrowRecord{}).
		Where("book_id = ? AND status = ?", bookID, domain.StatusBorrowing).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active borrows: %w", err)
	}
	return count, nil
}
