package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/library-management/internal/catalog/domain"
	ledger "github.com/tair/library-management/internal/ledger/domain"
)

// GormBookRepository implements BookRepository using GORM
type GormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository creates a new GORM book repository
func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormBookRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Book{})
}

// Create inserts a new book into the catalog
func (r *GormBookRepository) Create(ctx context.Context, book *domain.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// FindByID retrieves a book by ID
func (r *GormBookRepository) FindByID(ctx context.Context, id uint) (*domain.Book, error) {
	var book domain.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	return &book, nil
}

// FindLatest retrieves the most recently added books
func (r *GormBookRepository) FindLatest(ctx context.Context, limit int) ([]domain.Book, error) {
	var books []domain.Book
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to find books: %w", err)
	}
	return books, nil
}

// Search finds books whose title or author contains the query substring,
// optionally restricted to an exact category. Matching uses SQL LIKE, so
// case sensitivity follows the database collation.
func (r *GormBookRepository) Search(ctx context.Context, query, category string) ([]domain.Book, error) {
	var books []domain.Book
	q := r.db.WithContext(ctx).Model(&domain.Book{})

	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("title LIKE ? OR author LIKE ?", pattern, pattern)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}

	if err := q.Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return books, nil
}

// ListCategories returns the distinct non-empty categories in the catalog
func (r *GormBookRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&domain.Book{}).
		Where("category <> ''").
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Update saves a book's fields
func (r *GormBookRepository) Update(ctx context.Context, book *domain.Book) error {
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	return nil
}

// Delete soft deletes a book. It fails with ErrBookInUse while any borrow
// record for the book is still active; the check and the delete run in one
// transaction so a concurrent borrow cannot slip in between.
func (r *GormBookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		err := tx.Model(&ledger.BorrowRecord{}).
			Where("book_id = ? AND status = ?", id, ledger.StatusBorrowing).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("failed to count active borrows: %w", err)
		}
		if active > 0 {
			return domain.ErrBookInUse
		}

		result := tx.Delete(&domain.Book{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete book: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrBookNotFound
		}
		return nil
	})
}

// DecrementAvailable atomically takes one copy off the shelf. Fails with
// ErrNoCopiesAvailable when none are left; available never goes negative.
func (r *GormBookRepository) DecrementAvailable(ctx context.Context, id uint) error {
	return DecrementAvailable(r.db.WithContext(ctx), id)
}

// IncrementAvailable atomically puts one copy back. A result that would
// push available above quantity is a consistency error, not a clamp.
func (r *GormBookRepository) IncrementAvailable(ctx context.Context, id uint) error {
	return IncrementAvailable(r.db.WithContext(ctx), id)
}

// DecrementAvailable is the conditional single-row update behind borrow.
// Exported at package level so the ledger repository can reuse it inside
// its own transaction.
func DecrementAvailable(tx *gorm.DB, id uint) error {
	result := tx.Model(&domain.Book{}).
		Where("id = ? AND available > 0", id).
		UpdateColumn("available", gorm.Expr("available - 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement available: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&domain.Book{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check book: %w", err)
		}
		if count == 0 {
			return domain.ErrBookNotFound
		}
		return domain.ErrNoCopiesAvailable
	}
	return nil
}

// IncrementAvailable is the conditional single-row update behind return.
func IncrementAvailable(tx *gorm.DB, id uint) error {
	result := tx.Model(&domain.Book{}).
		Where("id = ? AND available < quantity", id).
		UpdateColumn("available", gorm.Expr("available + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment available: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("book %d: %w", id, domain.ErrAvailabilityConflict)
	}
	return nil
}

// Count returns the number of titles in the catalog
func (r *GormBookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Book{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

// SumQuantity returns the total number of copies owned
func (r *GormBookRepository) SumQuantity(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&domain.Book{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum quantity: %w", err)
	}
	return sum, nil
}

// SumBorrowed returns the number of copies currently on loan
func (r *GormBookRepository) SumBorrowed(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&domain.Book{}).
		Select("COALESCE(SUM(quantity - available), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum borrowed copies: %w", err)
	}
	return sum, nil
}
