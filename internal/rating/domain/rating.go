package domain

import (
	"context"
	"errors"
	"time"
)

// Rating errors, matched by callers with errors.Is.
var (
	ErrNotEligible  = errors.New("no returned borrow record to rate")
	ErrInvalidScore = errors.New("score must be between 1 and 5")
)

// Score bounds for a rating.
const (
	MinScore = 1
	MaxScore = 5
)

// ValidScore reports whether a score is inside the allowed range.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// Review is a rated, returned borrow record as shown on a book page.
type Review struct {
	RecordID   uint       `json:"record_id"`
	BookID     uint       `json:"book_id"`
	UserID     uint       `json:"user_id"`
	Username   string     `json:"username"`
	Rating     int        `json:"rating"`
	Review     string     `json:"review"`
	ReturnDate *time.Time `json:"return_date"`
}

// RatingRepository defines the contract for rating data access. Apply runs
// the whole re-rate cycle (subtract old score, add new one, update the
// record) in one transaction so the book aggregate and the record never
// drift apart.
type RatingRepository interface {
	Apply(ctx context.Context, recordID, userID uint, score int, review string) error
	FindReviewsByBookID(ctx context.Context, bookID uint, limit int) ([]Review, error)
	HasReturnedRecord(ctx context.Context, bookID, userID uint) (bool, error)
	AverageForBook(ctx context.Context, bookID uint) (average float64, count int, err error)
}
