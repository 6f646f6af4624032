package server

import (
	"net/http"

	"github.com/matiasrojas/guarani/internal/models"
)

// categoryTypeParam reads and validates the ?type= query parameter.
func categoryTypeParam(w http.ResponseWriter, r *http.Request) (models.CategoryType, bool) {
	t := models.CategoryType(r.URL.Query().Get("type"))
	if !models.ValidCategoryType(t) {
		WriteError(w, http.StatusBadRequest, "Query parameter 'type' must be 'income' or 'expense'")
		return "", false
	}
	return t, true
}

// handleCategories handles GET (list) and POST (add) on /api/categories.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categoryType, ok := categoryTypeParam(w, r)
		if !ok {
			return
		}
		names, err := s.app.CategoryService.ListCategories(r.Context(), categoryType)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": names})

	case http.MethodPost:
		var req struct {
			Type string `json:"type"`
			Name string `json:"name"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		categoryType := models.CategoryType(req.Type)
		if !models.ValidCategoryType(categoryType) {
			WriteError(w, http.StatusBadRequest, "Field 'type' must be 'income' or 'expense'")
			return
		}
		if err := s.app.CategoryService.AddCategory(r.Context(), categoryType, req.Name); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, map[string]string{"name": req.Name})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleCategoryByName handles PUT (rename) and DELETE on
// /api/categories/{name}?type=income|expense.
func (s *Server) handleCategoryByName(w http.ResponseWriter, r *http.Request) {
	name := PathParam(r, "/api/categories/", "")
	if name == "" {
		WriteError(w, http.StatusBadRequest, "Category name is required in path")
		return
	}
	categoryType, ok := categoryTypeParam(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		var req struct {
			NewName string `json:"new_name"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if err := s.app.CategoryService.RenameCategory(r.Context(), categoryType, name, req.NewName); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"name": req.NewName})

	case http.MethodDelete:
		if err := s.app.CategoryService.RemoveCategory(r.Context(), categoryType, name); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}
