package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLateFee(t *testing.T) {
	due := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("on time return costs nothing", func(t *testing.T) {
		assert.Equal(t, int64(0), LateFee(due, due.Add(-48*time.Hour), 5000))
		assert.Equal(t, int64(0), LateFee(due, due, 5000))
	})

	t.Run("one full day late", func(t *testing.T) {
		assert.Equal(t, int64(5000), LateFee(due, due.Add(24*time.Hour), 5000))
	})

	t.Run("partial days do not count", func(t *testing.T) {
		assert.Equal(t, int64(0), LateFee(due, due.Add(23*time.Hour), 5000))
		assert.Equal(t, int64(5000), LateFee(due, due.Add(36*time.Hour), 5000))
	})

	t.Run("fee scales with days", func(t *testing.T) {
		assert.Equal(t, int64(35000), LateFee(due, due.Add(7*24*time.Hour), 5000))
	})
}

func TestCurrentLateFee(t *testing.T) {
	due := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("returned record uses its return date", func(t *testing.T) {
		returned := due.Add(2 * 24 * time.Hour)
		r := BorrowRecord{DueDate: due, Status: StatusReturned, ReturnDate: &returned}

		// now being far in the future must not change the fee
		now := due.Add(100 * 24 * time.Hour)
		assert.Equal(t, int64(10000), r.CurrentLateFee(now, 5000))
	})

	t.Run("active record accrues against now", func(t *testing.T) {
		r := BorrowRecord{DueDate: due, Status: StatusBorrowing}
		assert.Equal(t, int64(0), r.CurrentLateFee(due.Add(-time.Hour), 5000))
		assert.Equal(t, int64(15000), r.CurrentLateFee(due.Add(3*24*time.Hour), 5000))
	})
}

func TestIsOverdue(t *testing.T) {
	due := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	active := BorrowRecord{DueDate: due, Status: StatusBorrowing}
	assert.False(t, active.IsOverdue(due))
	assert.True(t, active.IsOverdue(due.Add(time.Minute)))

	returned := BorrowRecord{DueDate: due, Status: StatusReturned}
	assert.False(t, returned.IsOverdue(due.Add(time.Hour)))
}

func TestDaysUntilDue(t *testing.T) {
	due := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	r := BorrowRecord{DueDate: due, Status: StatusBorrowing}

	assert.Equal(t, 14, r.DaysUntilDue(due.Add(-14*24*time.Hour)))
	assert.Equal(t, 0, r.DaysUntilDue(due.Add(-time.Hour)))
	assert.Equal(t, -2, r.DaysUntilDue(due.Add(2*24*time.Hour)))

	// past due rounds down, never toward zero
	assert.Equal(t, -1, r.DaysUntilDue(due.Add(time.Hour)))
	assert.Equal(t, -2, r.DaysUntilDue(due.Add(36*time.Hour)))

	returned := BorrowRecord{DueDate: due, Status: StatusReturned}
	assert.Equal(t, 0, returned.DaysUntilDue(due.Add(-5*24*time.Hour)))
}
