package http

// BorrowBook godoc
// @Summary Borrow a book
// @Description Borrow an available copy; the due date is the borrow date plus the loan period
// @Tags Borrows
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{book_id=int} true "Book to borrow"
// @Success 201 {object} object{id=int,book_id=int,user_id=int,due_date=string,status=string}
// @Failure 401 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/borrows [post]
func (h *LedgerHandler) BorrowBookDoc() {}

// ReturnBook godoc
// @Summary Return a borrowed book
// @Description Return a copy; computes the final late fee. Returning an already returned record is a no-op.
// @Tags Borrows
// @Security BearerAuth
// @Produce json
// @Param id path int true "Borrow record ID"
// @Success 200 {object} object{record=object,already_returned=bool}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/borrows/{id}/return [post]
func (h *LedgerHandler) ReturnBookDoc() {}

// ListMyBorrows godoc
// @Summary List my borrows
// @Description List the caller's borrow records with live late fees
// @Tags Borrows
// @Security BearerAuth
// @Produce json
// @Success 200 {array} object{id=int,status=string,live_late_fee=int,days_until_due=int,overdue=bool}
// @Failure 401 {object} object{error=string}
// @Router /api/borrows/my [get]
func (h *LedgerHandler) ListMyBorrowsDoc() {}

// ListAllBorrows godoc
// @Summary List all borrows
// @Description List every borrow record (Admin only)
// @Tags Borrows
// @Security BearerAuth
// @Produce json
// @Success 200 {array} object{id=int,status=string,live_late_fee=int}
// @Failure 403 {object} object{error=string}
// @Router /api/borrows [get]
func (h *LedgerHandler) ListAllBorrowsDoc() {}

// ListOverdue godoc
// @Summary List overdue borrows
// @Description List active records past their due date, fees recomputed live (Admin only)
// @Tags Borrows
// @Security BearerAuth
// @Produce json
// @Success 200 {array} object{id=int,due_date=string,live_late_fee=int}
// @Failure 403 {object} object{error=string}
// @Router /api/borrows/overdue [get]
func (h *LedgerHandler) ListOverdueDoc() {}
