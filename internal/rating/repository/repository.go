package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalog "github.com/tair/library-management/internal/catalog/domain"
	ledger "github.com/tair/library-management/internal/ledger/domain"
	"github.com/tair/library-management/internal/rating/domain"
)

// GormRatingRepository implements RatingRepository using GORM
type GormRatingRepository struct {
	db *gorm.DB
}

// NewGormRatingRepository creates a new GORM rating repository
func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

// Apply rates a returned borrow record. A prior rating is replaced, not
// duplicated: its score is first subtracted from the book's aggregate.
// Both rows are locked for the duration of the transaction.
func (r *GormRatingRepository) Apply(ctx context.Context, recordID, userID uint, score int, review string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record ledger.BorrowRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, recordID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledger.ErrRecordNotFound
			}
			return fmt.Errorf("failed to find borrow record: %w", err)
		}

		if record.UserID != userID || record.Status != ledger.StatusReturned {
			return domain.ErrNotEligible
		}

		var book catalog.Book
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&book, record.BookID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrBookNotFound
			}
			return fmt.Errorf("failed to find book: %w", err)
		}

		if record.Rating != nil {
			book.SumRatings -= *record.Rating
			book.TotalRatings--
		}

		record.Rating = &score
		record.Review = review
		book.SumRatings += score
		book.TotalRatings++

		if err := tx.Save(&book).Error; err != nil {
			return fmt.Errorf("failed to update book ratings: %w", err)
		}
		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("failed to update borrow record: %w", err)
		}
		return nil
	})
}

// FindReviewsByBookID lists rated records for a book, most recently
// returned first
func (r *GormRatingRepository) FindReviewsByBookID(ctx context.Context, bookID uint, limit int) ([]domain.Review, error) {
	var reviews []domain.Review
	q := r.db.WithContext(ctx).Table("borrow_records").
		Select("borrow_records.id AS record_id, borrow_records.book_id, borrow_records.user_id, users.username, borrow_records.rating, borrow_records.review, borrow_records.return_date").
		Joins("JOIN users ON users.id = borrow_records.user_id").
		Where("borrow_records.book_id = ? AND borrow_records.rating IS NOT NULL", bookID).
		Order("borrow_records.return_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	return reviews, nil
}

// HasReturnedRecord reports whether the user has returned this book at
// least once, which is what makes them eligible to rate it
func (r *GormRatingRepository) HasReturnedRecord(ctx context.Context, bookID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ledger.BorrowRecord{}).
		Where("book_id = ? AND user_id = ? AND status = ?", bookID, userID, ledger.StatusReturned).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check eligibility: %w", err)
	}
	return count > 0, nil
}

// AverageForBook returns the book's mean score and rating count
func (r *GormRatingRepository) AverageForBook(ctx context.Context, bookID uint) (float64, int, error) {
	var book catalog.Book
	if err := r.db.WithContext(ctx).First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, catalog.ErrBookNotFound
		}
		return 0, 0, fmt.Errorf("failed to find book: %w", err)
	}
	return book.AverageRating(), book.TotalRatings, nil
}
