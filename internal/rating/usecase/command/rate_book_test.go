package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/library-management/internal/rating/domain"
	"github.com/tair/library-management/pkg/auth"
)

type ratingRepoMock struct {
	applyFn func(recordID, userID uint, score int, review string) error
}

func (m *ratingRepoMock) Apply(ctx context.Context, recordID, userID uint, score int, review string) error {
	return m.applyFn(recordID, userID, score, review)
}
func (m *ratingRepoMock) FindReviewsByBookID(ctx context.Context, bookID uint, limit int) ([]domain.Review, error) {
	return nil, nil
}
func (m *ratingRepoMock) HasReturnedRecord(ctx context.Context, bookID, userID uint) (bool, error) {
	return false, nil
}
func (m *ratingRepoMock) AverageForBook(ctx context.Context, bookID uint) (float64, int, error) {
	return 0, 0, nil
}

func TestRateBook_ScoreBounds(t *testing.T) {
	h := NewRateBookHandler(&ratingRepoMock{})

	for _, score := range []int{0, -1, 6, 100} {
		err := h.Handle(context.Background(), RateBookCommand{RecordID: 1, Actor: auth.Identity{UserID: 9}, Score: score})
		assert.ErrorIs(t, err, domain.ErrInvalidScore)
	}
}

func TestRateBook_RequiresRecordID(t *testing.T) {
	h := NewRateBookHandler(&ratingRepoMock{})
	err := h.Handle(context.Background(), RateBookCommand{Actor: auth.Identity{UserID: 9}, Score: 4})
	assert.Error(t, err)
}

func TestRateBook_DelegatesToRepository(t *testing.T) {
	var gotRecord, gotUser uint
	var gotScore int
	var gotReview string
	repo := &ratingRepoMock{
		applyFn: func(recordID, userID uint, score int, review string) error {
			gotRecord, gotUser, gotScore, gotReview = recordID, userID, score, review
			return nil
		},
	}

	h := NewRateBookHandler(repo)
	err := h.Handle(context.Background(), RateBookCommand{
		RecordID: 12,
		Actor:    auth.Identity{UserID: 9, Role: "member"},
		Score:    5,
		Review:   "great read",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(12), gotRecord)
	assert.Equal(t, uint(9), gotUser)
	assert.Equal(t, 5, gotScore)
	assert.Equal(t, "great read", gotReview)
}

func TestRateBook_NotEligible(t *testing.T) {
	repo := &ratingRepoMock{
		applyFn: func(recordID, userID uint, score int, review string) error {
			return domain.ErrNotEligible
		},
	}

	h := NewRateBookHandler(repo)
	err := h.Handle(context.Background(), RateBookCommand{RecordID: 12, Actor: auth.Identity{UserID: 9}, Score: 3})
	assert.ErrorIs(t, err, domain.ErrNotEligible)
}
