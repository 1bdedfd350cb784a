package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/library-management/internal/dashboard/domain"
)

type reportRepoMock struct {
	summaryFn    func() (*domain.LibrarySummary, error)
	topBooksFn   func(limit int) ([]domain.BookBorrowCount, error)
	topReadersFn func(limit int) ([]domain.ReaderBorrowCount, error)
}

func (m *reportRepoMock) Summary(ctx context.Context) (*domain.LibrarySummary, error) {
	return m.summaryFn()
}
func (m *reportRepoMock) TopBooks(ctx context.Context, limit int) ([]domain.BookBorrowCount, error) {
	return m.topBooksFn(limit)
}
func (m *reportRepoMock) TopReaders(ctx context.Context, limit int) ([]domain.ReaderBorrowCount, error) {
	return m.topReadersFn(limit)
}

func healthyRepo(gotLimits *[]int) *reportRepoMock {
	return &reportRepoMock{
		summaryFn: func() (*domain.LibrarySummary, error) {
			return &domain.LibrarySummary{TotalTitles: 6, TotalCopies: 20, ActiveLoans: 3}, nil
		},
		topBooksFn: func(limit int) ([]domain.BookBorrowCount, error) {
			*gotLimits = append(*gotLimits, limit)
			return []domain.BookBorrowCount{{BookID: 1, Title: "Dune", BorrowCount: 4}}, nil
		},
		topReadersFn: func(limit int) ([]domain.ReaderBorrowCount, error) {
			*gotLimits = append(*gotLimits, limit)
			return []domain.ReaderBorrowCount{{UserID: 9, Username: "ana", BorrowCount: 2}}, nil
		},
	}
}

func TestGetSummary_DefaultRankingSize(t *testing.T) {
	var limits []int
	h := NewGetSummaryHandler(healthyRepo(&limits))

	report, err := h.Handle(context.Background(), GetSummaryQuery{})

	require.NoError(t, err)
	assert.Equal(t, []int{DefaultRankingSize, DefaultRankingSize}, limits)
	assert.Equal(t, int64(6), report.Summary.TotalTitles)
	require.Len(t, report.TopBooks, 1)
	require.Len(t, report.TopReaders, 1)
}

func TestGetSummary_ExplicitRankingSize(t *testing.T) {
	var limits []int
	h := NewGetSummaryHandler(healthyRepo(&limits))

	_, err := h.Handle(context.Background(), GetSummaryQuery{RankingSize: 10})

	require.NoError(t, err)
	assert.Equal(t, []int{10, 10}, limits)
}

func TestGetSummary_PropagatesErrors(t *testing.T) {
	var limits []int
	repo := healthyRepo(&limits)
	repo.summaryFn = func() (*domain.LibrarySummary, error) { return nil, errors.New("db down") }

	h := NewGetSummaryHandler(repo)
	_, err := h.Handle(context.Background(), GetSummaryQuery{})
	assert.Error(t, err)
}
