package server

import (
	"net/http"

	"github.com/matiasrojas/guarani/internal/models"
)

// handleAccounts handles GET (list) and POST (create) on /api/accounts.
func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		accounts, err := s.app.AccountService.ListAccounts(r.Context())
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})

	case http.MethodPost:
		var req struct {
			Name           string  `json:"name"`
			Type           string  `json:"type"`
			InitialBalance float64 `json:"initial_balance"`
			CreditLimit    float64 `json:"credit_limit"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		draft := models.Account{
			Name:           req.Name,
			Type:           models.AccountType(req.Type),
			InitialBalance: req.InitialBalance,
			CreditLimit:    req.CreditLimit,
		}
		account, err := s.app.AccountService.CreateAccount(r.Context(), draft)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, account)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleAccountByID handles GET, PUT/PATCH, and DELETE on /api/accounts/{id}.
func (s *Server) handleAccountByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/accounts/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Account id is required in path")
		return
	}

	switch r.Method {
	case http.MethodGet:
		account, err := s.app.AccountService.GetAccount(r.Context(), id)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, account)

	case http.MethodPut, http.MethodPatch:
		var req struct {
			Name           *string  `json:"name"`
			Type           *string  `json:"type"`
			InitialBalance *float64 `json:"initial_balance"`
			CreditLimit    *float64 `json:"credit_limit"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		patch := models.AccountPatch{
			Name:           req.Name,
			InitialBalance: req.InitialBalance,
			CreditLimit:    req.CreditLimit,
		}
		if req.Type != nil {
			t := models.AccountType(*req.Type)
			patch.Type = &t
		}
		account, err := s.app.AccountService.UpdateAccount(r.Context(), id, patch)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, account)

	case http.MethodDelete:
		if err := s.app.AccountService.DeleteAccount(r.Context(), id); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}
