package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/library-management/internal/ledger/domain"
)

type recordRepoMock struct {
	findByUserIDFn func(userID uint) ([]domain.BorrowRecord, error)
	findAllFn      func() ([]domain.BorrowRecord, error)
	findOverdueFn  func(now time.Time) ([]domain.BorrowRecord, error)
}

func (m *recordRepoMock) CreateWithDecrement(ctx context.Context, record *domain.BorrowRecord) error {
	return nil
}
func (m *recordRepoMock) FinishWithIncrement(ctx context.Context, record *domain.BorrowRecord) error {
	return nil
}
func (m *recordRepoMock) FindByID(ctx context.Context, id uint) (*domain.BorrowRecord, error) {
	return nil, nil
}
func (m *recordRepoMock) FindByUserID(ctx context.Context, userID uint) ([]domain.BorrowRecord, error) {
	return m.findByUserIDFn(userID)
}
func (m *recordRepoMock) FindAll(ctx context.Context) ([]domain.BorrowRecord, error) {
	return m.findAllFn()
}
func (m *recordRepoMock) FindOverdue(ctx context.Context, now time.Time) ([]domain.BorrowRecord, error) {
	return m.findOverdueFn(now)
}
func (m *recordRepoMock) CountActive(ctx context.Context) (int64, error) { return 0, nil }
func (m *recordRepoMock) CountActiveByBookID(ctx context.Context, bookID uint) (int64, error) {
	return 0, nil
}

func TestListForUser_StampsLiveFees(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	returned := now.Add(-5 * 24 * time.Hour)

	repo := &recordRepoMock{
		findByUserIDFn: func(userID uint) ([]domain.BorrowRecord, error) {
			return []domain.BorrowRecord{
				// overdue by 3 days
				{ID: 1, DueDate: now.Add(-3 * 24 * time.Hour), Status: domain.StatusBorrowing},
				// 10 days left
				{ID: 2, DueDate: now.Add(10 * 24 * time.Hour), Status: domain.StatusBorrowing},
				// returned 1 day late, fee already frozen at the return date
				{ID: 3, DueDate: returned.Add(-24 * time.Hour), Status: domain.StatusReturned, ReturnDate: &returned, LateFee: 5000},
			}, nil
		},
	}

	h := NewListForUserHandlerWithClock(repo, func() time.Time { return now })
	views, err := h.Handle(context.Background(), ListForUserQuery{UserID: 9, FeePerDay: 5000})

	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, int64(15000), views[0].LiveLateFee)
	assert.True(t, views[0].Overdue)
	assert.Equal(t, -3, views[0].DaysUntilDue)

	assert.Equal(t, int64(0), views[1].LiveLateFee)
	assert.False(t, views[1].Overdue)
	assert.Equal(t, 10, views[1].DaysUntilDue)

	assert.Equal(t, int64(5000), views[2].LiveLateFee)
	assert.False(t, views[2].Overdue)
	assert.Equal(t, 0, views[2].DaysUntilDue)
}

func TestListForUser_RequiresUserID(t *testing.T) {
	h := NewListForUserHandler(&recordRepoMock{})
	_, err := h.Handle(context.Background(), ListForUserQuery{FeePerDay: 5000})
	assert.Error(t, err)
}

func TestListForUser_EmptyHistory(t *testing.T) {
	repo := &recordRepoMock{
		findByUserIDFn: func(userID uint) ([]domain.BorrowRecord, error) { return nil, nil },
	}

	h := NewListForUserHandler(repo)
	views, err := h.Handle(context.Background(), ListForUserQuery{UserID: 9})

	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}
