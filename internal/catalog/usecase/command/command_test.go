package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/library-management/internal/catalog/domain"
)

// bookRepoMock implements domain.BookRepository with per-test functions.
type bookRepoMock struct {
	createFn   func(book *domain.Book) error
	findByIDFn func(id uint) (*domain.Book, error)
	updateFn   func(book *domain.Book) error
	deleteFn   func(id uint) error
}

func (m *bookRepoMock) Create(ctx context.Context, book *domain.Book) error {
	return m.createFn(book)
}
func (m *bookRepoMock) FindByID(ctx context.Context, id uint) (*domain.Book, error) {
	return m.findByIDFn(id)
}
func (m *bookRepoMock) FindLatest(ctx context.Context, limit int) ([]domain.Book, error) {
	return nil, nil
}
func (m *bookRepoMock) Search(ctx context.Context, query, category string) ([]domain.Book, error) {
	return nil, nil
}
func (m *bookRepoMock) ListCategories(ctx context.Context) ([]string, error) { return nil, nil }
func (m *bookRepoMock) Update(ctx context.Context, book *domain.Book) error {
	return m.updateFn(book)
}
func (m *bookRepoMock) Delete(ctx context.Context, id uint) error             { return m.deleteFn(id) }
func (m *bookRepoMock) DecrementAvailable(ctx context.Context, id uint) error { return nil }
func (m *bookRepoMock) IncrementAvailable(ctx context.Context, id uint) error { return nil }
func (m *bookRepoMock) Count(ctx context.Context) (int64, error)              { return 0, nil }
func (m *bookRepoMock) SumQuantity(ctx context.Context) (int64, error)        { return 0, nil }
func (m *bookRepoMock) SumBorrowed(ctx context.Context) (int64, error)        { return 0, nil }

func TestAddBook_Validation(t *testing.T) {
	h := NewAddBookHandler(&bookRepoMock{})

	cases := []struct {
		name string
		cmd  AddBookCommand
	}{
		{"missing title", AddBookCommand{Author: "a", Quantity: 1}},
		{"missing author", AddBookCommand{Title: "t", Quantity: 1}},
		{"zero quantity", AddBookCommand{Title: "t", Author: "a"}},
		{"negative quantity", AddBookCommand{Title: "t", Author: "a", Quantity: -3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Handle(context.Background(), tc.cmd)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAddBook_AllCopiesStartAvailable(t *testing.T) {
	var created *domain.Book
	repo := &bookRepoMock{
		createFn: func(book *domain.Book) error {
			created = book
			return nil
		},
	}

	h := NewAddBookHandler(repo)
	book, err := h.Handle(context.Background(), AddBookCommand{Title: "Dune", Author: "Frank Herbert", Quantity: 4})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 4, book.Quantity)
	assert.Equal(t, 4, book.Available)
}

func TestEditBook_RescalesAvailableOnResize(t *testing.T) {
	stored := &domain.Book{ID: 7, Title: "Old", Author: "Old", Quantity: 3, Available: 1}
	var updated *domain.Book
	repo := &bookRepoMock{
		findByIDFn: func(id uint) (*domain.Book, error) { return stored, nil },
		updateFn: func(book *domain.Book) error {
			updated = book
			return nil
		},
	}

	h := NewEditBookHandler(repo)
	_, err := h.Handle(context.Background(), EditBookCommand{ID: 7, Title: "New", Author: "New", Quantity: 6})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 6, updated.Quantity)
	assert.Equal(t, 2, updated.Available)
}

func TestEditBook_KeepsCoverWhenOmitted(t *testing.T) {
	stored := &domain.Book{ID: 7, Title: "T", Author: "A", Quantity: 2, Available: 2, CoverURL: "/covers/old.jpg"}
	repo := &bookRepoMock{
		findByIDFn: func(id uint) (*domain.Book, error) { return stored, nil },
		updateFn:   func(book *domain.Book) error { return nil },
	}

	h := NewEditBookHandler(repo)
	book, err := h.Handle(context.Background(), EditBookCommand{ID: 7, Title: "T2", Author: "A2", Quantity: 2})

	require.NoError(t, err)
	assert.Equal(t, "/covers/old.jpg", book.CoverURL)
	assert.Equal(t, 2, book.Available)
}

func TestEditBook_NotFound(t *testing.T) {
	repo := &bookRepoMock{
		findByIDFn: func(id uint) (*domain.Book, error) { return nil, domain.ErrBookNotFound },
	}

	h := NewEditBookHandler(repo)
	_, err := h.Handle(context.Background(), EditBookCommand{ID: 99, Title: "T", Author: "A", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestDeleteBook_PropagatesInUse(t *testing.T) {
	repo := &bookRepoMock{
		deleteFn: func(id uint) error { return domain.ErrBookInUse },
	}

	h := NewDeleteBookHandler(repo)
	err := h.Handle(context.Background(), DeleteBookCommand{ID: 3})
	assert.ErrorIs(t, err, domain.ErrBookInUse)
}

func TestDeleteBook_Success(t *testing.T) {
	var deletedID uint
	repo := &bookRepoMock{
		deleteFn: func(id uint) error {
			deletedID = id
			return nil
		},
	}

	h := NewDeleteBookHandler(repo)
	err := h.Handle(context.Background(), DeleteBookCommand{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, uint(3), deletedID)

	repo.deleteFn = func(id uint) error { return errors.New("boom") }
	assert.Error(t, h.Handle(context.Background(), DeleteBookCommand{ID: 3}))
}
