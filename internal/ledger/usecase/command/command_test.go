package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/tair/library-management/internal/catalog/domain"
	"github.com/tair/library-management/internal/ledger/domain"
	"github.com/tair/library-management/pkg/auth"
)

// recordRepoMock implements domain.BorrowRecordRepository with per-test functions.
type recordRepoMock struct {
	createWithDecrementFn func(record *domain.BorrowRecord) error
	finishWithIncrementFn func(record *domain.BorrowRecord) error
	findByIDFn            func(id uint) (*domain.BorrowRecord, error)
}

func (m *recordRepoMock) CreateWithDecrement(ctx context.Context, record *domain.BorrowRecord) error {
	return m.createWithDecrementFn(record)
}
func (m *recordRepoMock) FinishWithIncrement(ctx context.Context, record *domain.BorrowRecord) error {
	return m.finishWithIncrementFn(record)
}
func (m *recordRepoMock) FindByID(ctx context.Context, id uint) (*domain.BorrowRecord, error) {
	return m.findByIDFn(id)
}
func (m *recordRepoMock) FindByUserID(ctx context.Context, userID uint) ([]domain.BorrowRecord, error) {
	return nil, nil
}
func (m *recordRepoMock) FindAll(ctx context.Context) ([]domain.BorrowRecord, error) {
	return nil, nil
}
func (m *recordRepoMock) FindOverdue(ctx context.Context, now time.Time) ([]domain.BorrowRecord, error) {
	return nil, nil
}
func (m *recordRepoMock) CountActive(ctx context.Context) (int64, error) { return 0, nil }
func (m *recordRepoMock) CountActiveByBookID(ctx context.Context, bookID uint) (int64, error) {
	return 0, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestBorrowBook_Validation(t *testing.T) {
	h := NewBorrowBookHandler(&recordRepoMock{})

	cases := []struct {
		name string
		cmd  BorrowBookCommand
	}{
		{"missing book", BorrowBookCommand{UserID: 1, LoanPeriodDays: 14}},
		{"missing user", BorrowBookCommand{BookID: 1, LoanPeriodDays: 14}},
		{"zero loan period", BorrowBookCommand{BookID: 1, UserID: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Handle(context.Background(), tc.cmd)
			assert.Error(t, err)
		})
	}
}

func TestBorrowBook_DueDateFromLoanPeriod(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	var created *domain.BorrowRecord
	repo := &recordRepoMock{
		createWithDecrementFn: func(record *domain.BorrowRecord) error {
			created = record
			return nil
		},
	}

	h := NewBorrowBookHandlerWithClock(repo, fixedClock(now))
	record, err := h.Handle(context.Background(), BorrowBookCommand{BookID: 4, UserID: 9, LoanPeriodDays: 14})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, now, record.BorrowDate)
	assert.Equal(t, now.Add(14*24*time.Hour), record.DueDate)
	assert.Equal(t, domain.StatusBorrowing, record.Status)
	assert.Nil(t, record.ReturnDate)
}

func TestBorrowBook_NoCopiesAvailable(t *testing.T) {
	repo := &recordRepoMock{
		createWithDecrementFn: func(record *domain.BorrowRecord) error {
			return catalogdomain.ErrNoCopiesAvailable
		},
	}

	h := NewBorrowBookHandler(repo)
	_, err := h.Handle(context.Background(), BorrowBookCommand{BookID: 4, UserID: 9, LoanPeriodDays: 14})
	assert.ErrorIs(t, err, catalogdomain.ErrNoCopiesAvailable)
}

func TestReturnBook_OwnerOnly(t *testing.T) {
	repo := &recordRepoMock{
		findByIDFn: func(id uint) (*domain.BorrowRecord, error) {
			return &domain.BorrowRecord{ID: id, UserID: 9, Status: domain.StatusBorrowing}, nil
		},
	}

	h := NewReturnBookHandler(repo)
	_, err := h.Handle(context.Background(), ReturnBookCommand{RecordID: 1, Actor: auth.Identity{UserID: 2, Role: "member"}})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReturnBook_AdminMayReturnForAnyone(t *testing.T) {
	due := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &recordRepoMock{
		findByIDFn: func(id uint) (*domain.BorrowRecord, error) {
			return &domain.BorrowRecord{ID: id, UserID: 9, DueDate: due, Status: domain.StatusBorrowing}, nil
		},
		finishWithIncrementFn: func(record *domain.BorrowRecord) error { return nil },
	}

	h := NewReturnBookHandlerWithClock(repo, fixedClock(due))
	result, err := h.Handle(context.Background(), ReturnBookCommand{RecordID: 1, Actor: auth.Identity{UserID: 2, Role: "admin"}})

	require.NoError(t, err)
	assert.False(t, result.AlreadyReturned)
	assert.Equal(t, domain.StatusReturned, result.Record.Status)
}

func TestReturnBook_LateFeePersisted(t *testing.T) {
	due := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	returnedAt := due.Add(3 * 24 * time.Hour)

	var finished *domain.BorrowRecord
	repo := &recordRepoMock{
		findByIDFn: func(id uint) (*domain.BorrowRecord, error) {
			return &domain.BorrowRecord{ID: id, UserID: 9, DueDate: due, Status: domain.StatusBorrowing}, nil
		},
		finishWithIncrementFn: func(record *domain.BorrowRecord) error {
			finished = record
			return nil
		},
	}

	h := NewReturnBookHandlerWithClock(repo, fixedClock(returnedAt))
	result, err := h.Handle(context.Background(), ReturnBookCommand{
		RecordID:  1,
		Actor:     auth.Identity{UserID: 9, Role: "member"},
		FeePerDay: 5000,
	})

	require.NoError(t, err)
	require.NotNil(t, finished)
	assert.Equal(t, int64(15000), finished.LateFee)
	require.NotNil(t, result.Record.ReturnDate)
	assert.Equal(t, returnedAt, *result.Record.ReturnDate)
}

func TestReturnBook_AlreadyReturnedIsNoOp(t *testing.T) {
	returned := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	repo := &recordRepoMock{
		findByIDFn: func(id uint) (*domain.BorrowRecord, error) {
			return &domain.BorrowRecord{
				ID:         id,
				UserID:     9,
				Status:     domain.StatusReturned,
				ReturnDate: &returned,
				LateFee:    10000,
			}, nil
		},
		finishWithIncrementFn: func(record *domain.BorrowRecord) error {
			t.Fatal("a returned record must not be written again")
			return nil
		},
	}

	h := NewReturnBookHandler(repo)
	result, err := h.Handle(context.Background(), ReturnBookCommand{RecordID: 1, Actor: auth.Identity{UserID: 9, Role: "member"}})

	require.NoError(t, err)
	assert.True(t, result.AlreadyReturned)
	assert.Equal(t, int64(10000), result.Record.LateFee)
}

func TestReturnBook_ConcurrentReturnRace(t *testing.T) {
	due := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	winner := due.Add(time.Hour)

	calls := 0
	repo := &recordRepoMock{
		findByIDFn: func(id uint) (*domain.BorrowRecord, error) {
			calls++
			if calls == 1 {
				return &domain.BorrowRecord{ID: id, UserID: 9, DueDate: due, Status: domain.StatusBorrowing}, nil
			}
			// second fetch sees the state the winning return left behind
			return &domain.BorrowRecord{ID: id, UserID: 9, DueDate: due, Status: domain.StatusReturned, ReturnDate: &winner}, nil
		},
		finishWithIncrementFn: func(record *domain.BorrowRecord) error {
			return domain.ErrAlreadyReturned
		},
	}

	h := NewReturnBookHandlerWithClock(repo, fixedClock(due.Add(2*time.Hour)))
	result, err := h.Handle(context.Background(), ReturnBookCommand{RecordID: 1, Actor: auth.Identity{UserID: 9, Role: "member"}})

	require.NoError(t, err)
	assert.True(t, result.AlreadyReturned)
	require.NotNil(t, result.Record.ReturnDate)
	assert.Equal(t, winner, *result.Record.ReturnDate)
}

func TestReturnBook_NotFound(t *testing.T) {
	repo := &recordRepoMock{
		findByIDFn: func(id uint) (*domain.BorrowRecord, error) {
			return nil, domain.ErrRecordNotFound
		},
	}

	h := NewReturnBookHandler(repo)
	_, err := h.Handle(context.Background(), ReturnBookCommand{RecordID: 99, Actor: auth.Identity{UserID: 9}})
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	repo.findByIDFn = func(id uint) (*domain.BorrowRecord, error) { return nil, errors.New("db down") }
	_, err = h.Handle(context.Background(), ReturnBookCommand{RecordID: 99, Actor: auth.Identity{UserID: 9}})
	assert.Error(t, err)
}
