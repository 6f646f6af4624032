package server

import (
	"net/http"
	"time"

	"github.com/matiasrojas/guarani/internal/models"
)

// transactionRequest is the wire form of a transaction mutation. Dates are
// accepted as "2006-01-02" (the UI's format) or RFC 3339.
type transactionRequest struct {
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	Category  string  `json:"category"`
	Account   string  `json:"account"`
	ToAccount string  `json:"to_account"`
	Amount    float64 `json:"amount"`
	Detail    string  `json:"detail"`
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// mutationResponse pairs a mutated transaction with any reconciliation
// warnings raised while adjusting balances.
type mutationResponse struct {
	Transaction *models.Transaction            `json:"transaction,omitempty"`
	Warnings    []models.ReconciliationWarning `json:"warnings,omitempty"`
}

// handleTransactions handles GET (list) and POST (create) on /api/transactions.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		txs, err := s.app.LedgerService.ListTransactions(r.Context())
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"transactions": txs})

	case http.MethodPost:
		var req transactionRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		draft := models.Transaction{
			Type:      models.TransactionType(req.Type),
			Category:  req.Category,
			Account:   req.Account,
			ToAccount: req.ToAccount,
			Amount:    req.Amount,
			Detail:    req.Detail,
		}
		if req.Date != "" {
			date, err := parseDate(req.Date)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "Invalid date: "+req.Date)
				return
			}
			draft.Date = date
		}
		tx, warnings, err := s.app.LedgerService.CreateTransaction(r.Context(), draft)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, mutationResponse{Transaction: tx, Warnings: warnings})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleTransactionByID handles PUT/PATCH (update) and DELETE on
// /api/transactions/{id}.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/transactions/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Transaction id is required in path")
		return
	}

	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		var req struct {
			Date      *string  `json:"date"`
			Type      *string  `json:"type"`
			Category  *string  `json:"category"`
			Account   *string  `json:"account"`
			ToAccount *string  `json:"to_account"`
			Amount    *float64 `json:"amount"`
			Detail    *string  `json:"detail"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		patch := models.TransactionPatch{
			Category:  req.Category,
			Account:   req.Account,
			ToAccount: req.ToAccount,
			Amount:    req.Amount,
			Detail:    req.Detail,
		}
		if req.Type != nil {
			t := models.TransactionType(*req.Type)
			patch.Type = &t
		}
		if req.Date != nil {
			date, err := parseDate(*req.Date)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "Invalid date: "+*req.Date)
				return
			}
			patch.Date = &date
		}
		tx, warnings, err := s.app.LedgerService.UpdateTransaction(r.Context(), id, patch)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, mutationResponse{Transaction: tx, Warnings: warnings})

	case http.MethodDelete:
		warnings, err := s.app.LedgerService.DeleteTransaction(r.Context(), id)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, mutationResponse{Warnings: warnings})

	default:
		RequireMethod(w, r, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}
