package server

import (
	"net/http"
)

// handleChat handles POST /api/chat: natural-language questions answered over
// the current ledger snapshot.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	reply, err := s.app.AdvisorService.Ask(r.Context(), req.Message)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// handleAdminReconcile handles POST /api/admin/reconcile: replays the full
// transaction history and repairs drifted account balances.
func (s *Server) handleAdminReconcile(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	corrections, err := s.app.LedgerService.RecomputeBalances(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"corrected":   len(corrections),
		"corrections": corrections,
	})
}
