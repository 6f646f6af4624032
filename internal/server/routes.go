package server

import (
	"net/http"
	"time"

	"github.com/matiasrojas/guarani/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Transactions
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/api/transactions", s.handleTransactions)

	// Accounts
	mux.HandleFunc("/api/accounts/", s.handleAccountByID)
	mux.HandleFunc("/api/accounts", s.handleAccounts)

	// Categories
	mux.HandleFunc("/api/categories/", s.handleCategoryByName)
	mux.HandleFunc("/api/categories", s.handleCategories)

	// Reports
	mux.HandleFunc("/api/summary/breakdown", s.handleSummaryBreakdown)
	mux.HandleFunc("/api/summary/monthly", s.handleSummaryMonthly)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/charts/expenses.png", s.handleExpenseChart)
	mux.HandleFunc("/api/charts/monthly.png", s.handleMonthlyChart)

	// Chat assistant
	mux.HandleFunc("/api/chat", s.handleChat)

	// Admin
	mux.HandleFunc("/api/admin/reconcile", s.handleAdminReconcile)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}
