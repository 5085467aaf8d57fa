package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ozarkhomeloans/portal/internal/database"
	"github.com/ozarkhomeloans/portal/pkg/models"
)

// slugPattern matches valid slugs: lowercase letters, digits, and hyphens,
// 2-64 characters, must start and end with alphanumeric.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,62}[a-z0-9]$`)

// --- Loan products ---

// ListLoanProducts handles GET /api/loan-products.
// Admins see everything; ?active=1 restricts to active records.
func (h *Handler) ListLoanProducts(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "1"
	products, err := h.db.ListLoanProducts(activeOnly)
	if err != nil {
		log.Printf("Error listing loan products: %v", err)
		jsonError(w, "failed to list loan products", http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []models.LoanProduct{}
	}
	jsonData(w, products)
}

// GetLoanProduct handles GET /api/loan-products/{id}.
func (h *Handler) GetLoanProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.db.GetLoanProduct(id)
	if err != nil {
		log.Printf("Error getting loan product %s: %v", id, err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if p == nil {
		jsonError(w, "loan product not found", http.StatusNotFound)
		return
	}
	jsonData(w, p)
}

// CreateLoanProduct handles POST /api/loan-products.
func (h *Handler) CreateLoanProduct(w http.ResponseWriter, r *http.Request) {
	var p models.LoanProduct
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if p.Name == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}
	if p.Slug == "" || !slugPattern.MatchString(p.Slug) {
		jsonError(w, "slug must be 2-64 characters, lowercase alphanumeric and hyphens", http.StatusBadRequest)
		return
	}

	now := time.Now()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := h.db.CreateLoanProduct(&p); err != nil {
		log.Printf("Error creating loan product: %v", err)
		jsonError(w, "failed to create loan product", http.StatusInternalServerError)
		return
	}
	jsonCreated(w, p)
}

// UpdateLoanProduct handles PUT /api/loan-products/{id}.
func (h *Handler) UpdateLoanProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.db.GetLoanProduct(id)
	if err != nil {
		log.Printf("Error getting loan product %s: %v", id, err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		jsonError(w, "loan product not found", http.StatusNotFound)
		return
	}

	var p models.LoanProduct
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if p.Name == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}
	if p.Slug == "" || !slugPattern.MatchString(p.Slug) {
		jsonError(w, "slug must be 2-64 characters, lowercase alphanumeric and hyphens", http.StatusBadRequest)
		return
	}

	p.ID = id
	p.CreatedAt = existing.CreatedAt
	if err := h.db.UpdateLoanProduct(&p); err != nil {
		log.Printf("Error updating loan product %s: %v", id, err)
		jsonError(w, "failed to update loan product", http.StatusInternalServerError)
		return
	}
	jsonData(w, p)
}

// DeleteLoanProduct handles DELETE /api/loan-products/{id}.
func (h *Handler) DeleteLoanProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.db.DeleteLoanProduct(id); err != nil {
		log.Printf("Error deleting loan product %s: %v", id, err)
		jsonError(w, "failed to delete loan product", http.StatusInternalServerError)
		return
	}
	jsonData(w, map[string]string{"deleted": id})
}

// ReorderLoanProducts handles PUT /api/loan-products/reorder.
// The body is the full ordered list of {id, display_order} pairs; the write
// is wholesale and last-write-wins.
func (h *Handler) ReorderLoanProducts(w http.ResponseWriter, r *http.Request) {
	var updates []database.DisplayOrderUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(updates) == 0 {
		jsonError(w, "at least one entry is required", http.StatusBadRequest)
		return
	}
	if err := h.db.ReorderLoanProducts(updates); err != nil {
		log.Printf("Error reordering loan products: %v", err)
		jsonError(w, "failed to reorder loan products", http.StatusInternalServerError)
		return
	}
	jsonData(w, map[string]int{"updated": len(updates)})
}

// --- Loan page widgets ---

// ListLoanPageWidgets handles GET /api/loan-page-widgets.
func (h *Handler) ListLoanPageWidgets(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "1"
	widgets, err := h.db.ListLoanPageWidgets(activeOnly)
	if err != nil {
		log.Printf("Error listing widgets: %v", err)
		jsonError(w, "failed to list widgets", http.StatusInternalServerError)
		return
	}
	if widgets == nil {
		widgets = []models.LoanPageWidget{}
	}
	jsonData(w, widgets)
}

// CreateLoanPageWidget handles POST /api/loan-page-widgets.
func (h *Handler) CreateLoanPageWidget(w http.ResponseWriter, r *http.Request) {
	var widget models.LoanPageWidget
	if err := json.NewDecoder(r.Body).Decode(&widget); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if widget.Title == "" {
		jsonError(w, "title is required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	widget.ID = uuid.New().String()
	widget.CreatedAt = now
	widget.UpdatedAt = now

	if err := h.db.CreateLoanPageWidget(&widget); err != nil {
		log.Printf("Error creating widget: %v", err)
		jsonError(w, "failed to create widget", http.StatusInternalServerError)
		return
	}
	jsonCreated(w, widget)
}

// UpdateLoanPageWidget handles PUT /api/loan-page-widgets/{id}.
func (h *Handler) UpdateLoanPageWidget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.db.GetLoanPageWidget(id)
	if err != nil {
		log.Printf("Error getting widget %s: %v", id, err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		jsonError(w, "widget not found", http.StatusNotFound)
		return
	}

	var widget models.LoanPageWidget
	if err := json.NewDecoder(r.Body).Decode(&widget); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if widget.Title == "" {
		jsonError(w, "title is required", http.StatusBadRequest)
		return
	}

	widget.ID = id
	widget.CreatedAt = existing.CreatedAt
	if err := h.db.UpdateLoanPageWidget(&widget); err != nil {
		log.Printf("Error updating widget %s: %v", id, err)
		jsonError(w, "failed to update widget", http.StatusInternalServerError)
		return
	}
	jsonData(w, widget)
}

// DeleteLoanPageWidget handles DELETE /api/loan-page-widgets/{id}.
func (h *Handler) DeleteLoanPageWidget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.db.DeleteLoanPageWidget(id); err != nil {
		log.Printf("Error deleting widget %s: %v", id, err)
		jsonError(w, "failed to delete widget", http.StatusInternalServerError)
		return
	}
	jsonData(w, map[string]string{"deleted": id})
}

// ReorderLoanPageWidgets handles PUT /api/loan-page-widgets/reorder.
func (h *Handler) ReorderLoanPageWidgets(w http.ResponseWriter, r *http.Request) {
	var updates []database.DisplayOrderUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(updates) == 0 {
		jsonError(w, "at least one entry is required", http.StatusBadRequest)
		return
	}
	if err := h.db.ReorderLoanPageWidgets(updates); err != nil {
		log.Printf("Error reordering widgets: %v", err)
		jsonError(w, "failed to reorder widgets", http.StatusInternalServerError)
		return
	}
	jsonData(w, map[string]int{"updated": len(updates)})
}
