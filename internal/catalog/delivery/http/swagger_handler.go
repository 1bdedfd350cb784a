package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListBooks godoc
// @Summary Search the catalog
// @Description List books, optionally filtered by a title/author substring and an exact category
// @Tags Books
// @Produce json
// @Param search query string false "Title or author substring"
// @Param category query string false "Exact category"
// @Success 200 {object} object{books=array,categories=array}
// @Failure 500 {object} object{error=string}
// @Router /api/books [get]
func (h *BookHandler) ListBooksDoc() {}

// GetBook godoc
// @Summary Get book by ID
// @Description Get one book with its average rating
// @Tags Books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} object{id=int,title=string,author=string,quantity=int,available=int,average_rating=number}
// @Failure 404 {object} object{error=string}
// @Router /api/books/{id} [get]
func (h *BookHandler) GetBookDoc() {}

// AddBook godoc
// @Summary Add a book
// @Description Add a new title to the catalog (Admin only)
// @Tags Books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{title=string,author=string,category=string,description=string,cover_url=string,quantity=int} true "Book data"
// @Success 201 {object} object{id=int,title=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /api/books [post]
func (h *BookHandler) AddBookDoc() {}

// EditBook godoc
// @Summary Edit a book
// @Description Update descriptive fields and resize the stock (Admin only)
// @Tags Books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body object{title=string,author=string,category=string,description=string,cover_url=string,quantity=int} true "Book data"
// @Success 200 {object} object{id=int,title=string,quantity=int,available=int}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/books/{id} [put]
func (h *BookHandler) EditBookDoc() {}

// DeleteBook godoc
// @Summary Delete a book
// @Description Remove a title with no active borrows (Admin only)
// @Tags Books
// @Security BearerAuth
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/books/{id} [delete]
func (h *BookHandler) DeleteBookDoc() {}
