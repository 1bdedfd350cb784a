package http

// RateBook godoc
// @Summary Rate a returned book
// @Description Attach a score and optional review to one of your returned borrow records; rating again replaces the earlier score
// @Tags Ratings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Borrow record ID"
// @Param request body object{rating=int,review=string} true "Score (1-5) and optional review"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/borrows/{id}/rate [post]
func (h *RatingHandler) RateBookDoc() {}

// GetAverageRating godoc
// @Summary Get a book's average rating
// @Tags Ratings
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} object{book_id=int,average=number,count=int}
// @Failure 404 {object} object{error=string}
// @Router /api/books/{id}/rating [get]
func (h *RatingHandler) GetAverageRatingDoc() {}

// ListReviews godoc
// @Summary List a book's reviews
// @Description Rated borrow records for a book, most recently returned first
// @Tags Ratings
// @Produce json
// @Param id path int true "Book ID"
// @Param limit query int false "Maximum number of reviews (default 10)"
// @Success 200 {array} object{record_id=int,username=string,rating=int,review=string}
// @Router /api/books/{id}/reviews [get]
func (h *RatingHandler) ListReviewsDoc() {}

// CheckEligibility godoc
// @Summary Check rating eligibility
// @Description Whether the caller has returned this book at least once
// @Tags Ratings
// @Security BearerAuth
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} object{eligible=bool}
// @Router /api/books/{id}/rating/eligibility [get]
func (h *RatingHandler) CheckEligibilityDoc() {}
