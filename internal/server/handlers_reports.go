package server

import (
	"net/http"
	"strconv"

	"github.com/matiasrojas/guarani/internal/models"
)

// handleSummary handles GET /api/summary.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	summary, err := s.app.ReportService.Summary(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// handleSummaryBreakdown handles GET /api/summary/breakdown?type=expense.
func (s *Server) handleSummaryBreakdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	categoryType := models.CategoryType(r.URL.Query().Get("type"))
	if categoryType == "" {
		categoryType = models.CategoryExpense
	}
	if !models.ValidCategoryType(categoryType) {
		WriteError(w, http.StatusBadRequest, "Query parameter 'type' must be 'income' or 'expense'")
		return
	}
	breakdown, err := s.app.ReportService.CategoryBreakdown(r.Context(), categoryType)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"type":      categoryType,
		"breakdown": breakdown,
	})
}

// handleSummaryMonthly handles GET /api/summary/monthly?months=N.
func (s *Server) handleSummaryMonthly(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	months := 0
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, http.StatusBadRequest, "Query parameter 'months' must be a positive integer")
			return
		}
		months = n
	}
	totals, err := s.app.ReportService.MonthlyTotals(r.Context(), months)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"monthly": totals})
}

// handleExpenseChart handles GET /api/charts/expenses.png.
func (s *Server) handleExpenseChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	png, err := s.app.ReportService.RenderExpenseChart(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleMonthlyChart handles GET /api/charts/monthly.png.
func (s *Server) handleMonthlyChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	png, err := s.app.ReportService.RenderMonthlyChart(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
