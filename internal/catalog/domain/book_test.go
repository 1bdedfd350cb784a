package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	t.Run("no ratings yields zero", func(t *testing.T) {
		b := Book{}
		assert.Equal(t, 0.0, b.AverageRating())
	})

	t.Run("rounds to one decimal", func(t *testing.T) {
		b := Book{SumRatings: 8, TotalRatings: 3}
		assert.Equal(t, 2.7, b.AverageRating())

		b = Book{SumRatings: 7, TotalRatings: 2}
		assert.Equal(t, 3.5, b.AverageRating())
	})

	t.Run("re-rated record counts once", func(t *testing.T) {
		// a 5 later corrected to a 3 alongside an existing 4
		b := Book{SumRatings: 4 + 5, TotalRatings: 2}
		b.SumRatings -= 5
		b.TotalRatings--
		b.SumRatings += 3
		b.TotalRatings++
		assert.Equal(t, 3.5, b.AverageRating())
		assert.Equal(t, 2, b.TotalRatings)
	})
}

func TestRescaleAvailable(t *testing.T) {
	t.Run("scales proportionally rounding down", func(t *testing.T) {
		// 2 of 3 copies out, stock doubled: 6*1/3 = 2 available
		assert.Equal(t, 2, RescaleAvailable(3, 6, 1))
	})

	t.Run("full shelf stays full", func(t *testing.T) {
		assert.Equal(t, 8, RescaleAvailable(4, 8, 4))
		assert.Equal(t, 2, RescaleAvailable(4, 2, 4))
	})

	t.Run("zero old quantity resets to new quantity", func(t *testing.T) {
		assert.Equal(t, 5, RescaleAvailable(0, 5, 0))
	})

	t.Run("all copies out stays empty", func(t *testing.T) {
		assert.Equal(t, 0, RescaleAvailable(3, 9, 0))
	})
}
