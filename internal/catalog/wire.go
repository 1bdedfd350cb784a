//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/library-management/internal/catalog/delivery/http"
	"github.com/tair/library-management/internal/catalog/domain"
	"github.com/tair/library-management/internal/catalog/repository"
	"github.com/tair/library-management/internal/catalog/usecase/command"
	"github.com/tair/library-management/internal/catalog/usecase/query"
)

// ProvideBookRepository provides the book repository, traced
func ProvideBookRepository(db *gorm.DB) domain.BookRepository {
	return repository.NewGormBookRepositoryWithTracing(db)
}

// Command handler providers
func ProvideAddBookHandler(repo domain.BookRepository) *command.AddBookHandler {
	return command.NewAddBookHandler(repo)
}

func ProvideEditBookHandler(repo domain.BookRepository) *command.EditBookHandler {
	return command.NewEditBookHandler(repo)
}

func ProvideDeleteBookHandler(repo domain.BookRepository) *command.DeleteBookHandler {
	return command.NewDeleteBookHandler(repo)
}

// Query handler providers
func ProvideGetBookHandler(repo domain.BookRepository) *query.GetBookHandler {
	return query.NewGetBookHandler(repo)
}

func ProvideSearchBooksHandler(repo domain.BookRepository) *query.SearchBooksHandler {
	return query.NewSearchBooksHandler(repo)
}

func ProvideListLatestHandler(repo domain.BookRepository) *query.ListLatestHandler {
	return query.NewListLatestHandler(repo)
}

// ProvideCommandHandlers provides all catalog command handlers
func ProvideCommandHandlers(
	addHandler *command.AddBookHandler,
	editHandler *command.EditBookHandler,
	deleteHandler *command.DeleteBookHandler,
) *http.CommandHandlers {
	return &http.CommandHandlers{
		AddHandler:    addHandler,
		EditHandler:   editHandler,
		DeleteHandler: deleteHandler,
	}
}

// ProvideQueryHandlers provides all catalog query handlers
func ProvideQueryHandlers(
	getHandler *query.GetBookHandler,
	searchHandler *query.SearchBooksHandler,
	latestHandler *query.ListLatestHandler,
) *http.QueryHandlers {
	return &http.QueryHandlers{
		GetHandler:    getHandler,
		SearchHandler: searchHandler,
		LatestHandler: latestHandler,
	}
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideBookRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideAddBookHandler,
	ProvideEditBookHandler,
	ProvideDeleteBookHandler,
	ProvideCommandHandlers,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetBookHandler,
	ProvideSearchBooksHandler,
	ProvideListLatestHandler,
	ProvideQueryHandlers,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes the catalog HTTP handler
func InitializeHTTPHandler(db *gorm.DB) (*http.BookHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewBookHandlerWithDI,
	)
	return nil, nil
}
