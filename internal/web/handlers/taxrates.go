package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ozarkhomeloans/portal/internal/taxrates"
)

// LookupTaxRate handles GET /api/tax-rates/{zip}.
func (h *Handler) LookupTaxRate(w http.ResponseWriter, r *http.Request) {
	zip := chi.URLParam(r, "zip")
	result, ok := taxrates.Lookup(zip)
	if !ok {
		jsonError(w, "no tax rate available for "+zip, http.StatusNotFound)
		return
	}
	jsonData(w, result)
}

// SearchTaxRates handles GET /api/tax-rates?q=&limit= for autocomplete.
func (h *Handler) SearchTaxRates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := queryInt(r, "limit", 10)
	if limit > 50 {
		limit = 50
	}

	results := taxrates.Search(query, limit)
	if results == nil {
		results = []taxrates.ZipCountyRecord{}
	}
	jsonData(w, results)
}
