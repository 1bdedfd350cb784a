package domain

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
)

// Catalog errors, matched by callers with errors.Is.
var (
	ErrBookNotFound         = errors.New("book not found")
	ErrNoCopiesAvailable    = errors.New("no copies available")
	ErrBookInUse            = errors.New("book has active borrows")
	ErrInvalidInput         = errors.New("invalid input")
	ErrAvailabilityConflict = errors.New("available count out of bounds")
)

// Book represents a catalogued title. Quantity is the total number of
// copies owned, Available the copies not currently on loan. The invariant
// 0 <= Available <= Quantity holds at all times.
type Book struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title" gorm:"not null"`
	Author       string         `json:"author" gorm:"not null"`
	Category     string         `json:"category" gorm:"index"`
	Description  string         `json:"description"`
	CoverURL     string         `json:"cover_url"`
	Quantity     int            `json:"quantity" gorm:"not null;default:1"`
	Available    int            `json:"available" gorm:"not null;default:1"`
	TotalRatings int            `json:"total_ratings" gorm:"not null;default:0"`
	SumRatings   int            `json:"sum_ratings" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"` // Soft delete keeps history joinable
}

// TableName specifies the table name
func (Book) TableName() string {
	return "books"
}

// AverageRating returns the mean score rounded to one decimal place,
// or 0 when the book has no ratings.
func (b *Book) AverageRating() float64 {
	if b.TotalRatings == 0 {
		return 0
	}
	return math.Round(float64(b.SumRatings)/float64(b.TotalRatings)*10) / 10
}

// RescaleAvailable computes the available count after a quantity edit.
// The fraction of copies on loan is preserved:
// newAvailable = floor(newQuantity * oldAvailable / oldQuantity).
// When oldQuantity is 0 every copy of the new stock is available.
func RescaleAvailable(oldQuantity, newQuantity, oldAvailable int) int {
	if oldQuantity <= 0 {
		return newQuantity
	}
	return newQuantity * oldAvailable / oldQuantity
}

// BookRepository defines the contract for catalog data access
type BookRepository interface {
	Create(ctx context.Context, book *Book) error
	FindByID(ctx context.Context, id uint) (*Book, error)
	FindLatest(ctx context.Context, limit int) ([]Book, error)
	Search(ctx context.Context, query, category string) ([]Book, error)
	ListCategories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id uint) error
	DecrementAvailable(ctx context.Context, id uint) error
	IncrementAvailable(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	SumQuantity(ctx context.Context) (int64, error)
	SumBorrowed(ctx context.Context) (int64, error)
}
