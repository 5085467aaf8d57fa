package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// pageSetting loads a settings document and decodes it for templates.
// An unwritten document yields nil so templates can fall back to defaults.
func (h *Handler) pageSetting(name string) map[string]interface{} {
	raw, err := h.db.GetSetting(name)
	if err != nil {
		log.Printf("Error loading setting %s: %v", name, err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Printf("Error decoding setting %s: %v", name, err)
		return nil
	}
	return doc
}

// LoansPage handles GET /loans — the public loan-products landing page.
func (h *Handler) LoansPage(w http.ResponseWriter, r *http.Request) {
	products, err := h.db.ListLoanProducts(true)
	if err != nil {
		log.Printf("Error listing loan products: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	widgets, err := h.db.ListLoanPageWidgets(true)
	if err != nil {
		log.Printf("Error listing loan page widgets: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.renderTemplate(w, "loans.html", map[string]interface{}{
		"Title":    "Loan Programs",
		"Year":     time.Now().Year(),
		"Products": products,
		"Widgets":  widgets,
		"Page":     h.pageSetting("loan-page"),
		"Site":     h.pageSetting("site"),
		"Header":   h.pageSetting("header"),
	})
}

// LoanDetailPage handles GET /loans/{slug}. Inactive products are hidden
// from the public site even when the slug is known.
func (h *Handler) LoanDetailPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	product, err := h.db.GetLoanProductBySlug(slug)
	if err != nil {
		log.Printf("Error getting loan product %s: %v", slug, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if product == nil || !product.IsActive {
		h.renderNotFound(w)
		return
	}

	h.renderTemplate(w, "loan_detail.html", map[string]interface{}{
		"Title":   product.Name,
		"Year":    time.Now().Year(),
		"Product": product,
		"Site":    h.pageSetting("site"),
		"Header":  h.pageSetting("header"),
	})
}

// AboutPage handles GET /about, rendered from the about settings document.
func (h *Handler) AboutPage(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, "about.html", map[string]interface{}{
		"Title":  "About Us",
		"Year":   time.Now().Year(),
		"About":  h.pageSetting("about"),
		"Site":   h.pageSetting("site"),
		"Header": h.pageSetting("header"),
	})
}
