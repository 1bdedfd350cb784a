package http

// GetSummary godoc
// @Summary Admin dashboard report
// @Description Stock totals, loan counts and the most-borrowed books and most-active readers
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param top query int false "Ranking size (default 5)"
// @Success 200 {object} object{summary=object,top_books=array,top_readers=array}
// @Failure 403 {object} object{error=string}
// @Router /api/dashboard [get]
func (h *DashboardHandler) GetSummaryDoc() {}
