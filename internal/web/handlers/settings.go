package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ozarkhomeloans/portal/pkg/models"
)

// settingNames is the set of settings documents the API exposes.
// GET/PUT /api/settings/{name}.
var settingNames = map[string]bool{
	"about":               true,
	"header":              true,
	"site":                true,
	"navigation":          true,
	"mobile-menu-buttons": true,
	"meta-landing":        true,
}

// GetSetting handles GET /api/settings/{name}.
// An unwritten document returns success with null data.
func (h *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !settingNames[name] {
		jsonError(w, "unknown setting", http.StatusNotFound)
		return
	}

	doc, err := h.db.GetSetting(name)
	if err != nil {
		log.Printf("Error reading setting %s: %v", name, err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if doc == nil {
		jsonData(w, nil)
		return
	}
	jsonData(w, json.RawMessage(doc))
}

// PutSetting handles PUT /api/settings/{name}. The body replaces the stored
// document wholesale; array order in navigation and mobile-menu-buttons is
// the display order. Last write wins.
func (h *Handler) PutSetting(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !settingNames[name] {
		jsonError(w, "unknown setting", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateSetting(name, body); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.db.PutSetting(name, body); err != nil {
		log.Printf("Error writing setting %s: %v", name, err)
		jsonError(w, "failed to save setting", http.StatusInternalServerError)
		return
	}
	jsonData(w, json.RawMessage(body))
}

// validateSetting checks the document parses as the expected shape.
func validateSetting(name string, body []byte) error {
	switch name {
	case "navigation":
		var items []models.MenuItem
		return decodeStrictJSON(body, &items)
	case "mobile-menu-buttons":
		var buttons []models.MobileButton
		return decodeStrictJSON(body, &buttons)
	default:
		// Free-form documents only need to be valid JSON.
		var v interface{}
		return decodeStrictJSON(body, &v)
	}
}

func decodeStrictJSON(body []byte, dst interface{}) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return errInvalidDocument
	}
	return nil
}

var errInvalidDocument = errors.New("document does not match the expected shape")

// loanPageSettingName keys the singleton loans-page hero/intro document.
const loanPageSettingName = "loan-page"

// GetLoanPageSettings handles GET /api/loan-page-settings.
func (h *Handler) GetLoanPageSettings(w http.ResponseWriter, r *http.Request) {
	doc, err := h.db.GetSetting(loanPageSettingName)
	if err != nil {
		log.Printf("Error reading loan page settings: %v", err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if doc == nil {
		jsonData(w, models.LoanPageSettings{})
		return
	}
	jsonData(w, json.RawMessage(doc))
}

// PutLoanPageSettings handles PUT /api/loan-page-settings. The body replaces
// the singleton wholesale.
func (h *Handler) PutLoanPageSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var s models.LoanPageSettings
	if err := decodeStrictJSON(body, &s); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.db.PutSetting(loanPageSettingName, body); err != nil {
		log.Printf("Error writing loan page settings: %v", err)
		jsonError(w, "failed to save settings", http.StatusInternalServerError)
		return
	}
	jsonData(w, s)
}
