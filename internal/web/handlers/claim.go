package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ozarkhomeloans/portal/internal/claims"
	"github.com/ozarkhomeloans/portal/internal/uploads"
	"github.com/ozarkhomeloans/portal/pkg/models"
)

// ClaimPage handles GET /claim/{token} — the public prize-claim page.
// An unknown token renders the not-found page so the URL space stays
// unenumerable.
func (h *Handler) ClaimPage(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	winner, err := h.db.GetWinnerByToken(token)
	if err != nil {
		log.Printf("Error looking up claim token: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if winner == nil {
		h.renderNotFound(w)
		return
	}

	giveaway, err := h.db.GetGiveaway(winner.GiveawayID)
	if err != nil || giveaway == nil {
		log.Printf("Error loading giveaway %s for winner %s: %v", winner.GiveawayID, winner.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	state := claims.Resolve(winner.ClaimedAt, winner.ClaimDeadline, time.Now())

	var prizeValue float64
	if giveaway.PrizeValue != nil {
		prizeValue = *giveaway.PrizeValue
	}

	data := map[string]interface{}{
		"Title":      "Claim Your Prize",
		"Year":       time.Now().Year(),
		"State":      string(state),
		"Token":      winner.ClaimToken,
		"WinnerID":   winner.ID,
		"Giveaway":   giveaway,
		"PrizeValue": prizeValue,
		"Deadline":   winner.ClaimDeadline,
		"ClaimedAt":  winner.ClaimedAt,
		"RequiresW9": claims.RequiresW9(giveaway.RequireW9, giveaway.PrizeValue, giveaway.W9Threshold),
		"RequiresID": giveaway.RequireID,
	}
	h.renderTemplate(w, "claim.html", data)
}

// usStates covers the two-letter codes accepted on the claim form.
var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true,
}

func formBool(r *http.Request, name string) bool {
	v := strings.ToLower(r.FormValue(name))
	return v == "true" || v == "on" || v == "1"
}

// SubmitClaim handles POST /api/giveaways/claim. The form is multipart so
// the W-9 and ID documents ride along with the shipping fields.
func (h *Handler) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	token := r.FormValue("token")
	if token == "" {
		jsonError(w, "token is required", http.StatusBadRequest)
		return
	}

	winner, err := h.db.GetWinnerByToken(token)
	if err != nil {
		log.Printf("Error looking up claim token: %v", err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if winner == nil {
		jsonError(w, "claim not found", http.StatusNotFound)
		return
	}

	now := time.Now()
	switch claims.Resolve(winner.ClaimedAt, winner.ClaimDeadline, now) {
	case claims.StateClaimed:
		jsonError(w, "this prize has already been claimed", http.StatusConflict)
		return
	case claims.StateExpired:
		jsonError(w, "the claim deadline has passed", http.StatusGone)
		return
	}

	giveaway, err := h.db.GetGiveaway(winner.GiveawayID)
	if err != nil || giveaway == nil {
		log.Printf("Error loading giveaway %s for winner %s: %v", winner.GiveawayID, winner.ID, err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	legalName := strings.TrimSpace(r.FormValue("legalName"))
	addressLine1 := strings.TrimSpace(r.FormValue("addressLine1"))
	addressLine2 := strings.TrimSpace(r.FormValue("addressLine2"))
	city := strings.TrimSpace(r.FormValue("city"))
	state := strings.ToUpper(strings.TrimSpace(r.FormValue("state")))
	zipCode := strings.TrimSpace(r.FormValue("zipCode"))

	switch {
	case legalName == "":
		jsonError(w, "legalName is required", http.StatusBadRequest)
		return
	case addressLine1 == "":
		jsonError(w, "addressLine1 is required", http.StatusBadRequest)
		return
	case city == "":
		jsonError(w, "city is required", http.StatusBadRequest)
		return
	case !usStates[state]:
		jsonError(w, "state must be a two-letter US state code", http.StatusBadRequest)
		return
	case len(zipCode) != 5:
		jsonError(w, "zipCode must be 5 digits", http.StatusBadRequest)
		return
	}
	for _, c := range zipCode {
		if c < '0' || c > '9' {
			jsonError(w, "zipCode must be 5 digits", http.StatusBadRequest)
			return
		}
	}

	if !formBool(r, "confirmIdentity") {
		jsonError(w, "you must confirm your identity", http.StatusBadRequest)
		return
	}
	if !formBool(r, "agreeToTerms") {
		jsonError(w, "you must agree to the terms", http.StatusBadRequest)
		return
	}

	for _, restricted := range giveaway.RestrictedStates {
		if strings.EqualFold(restricted, state) {
			jsonError(w, "this giveaway is not open to residents of "+state, http.StatusBadRequest)
			return
		}
	}

	needW9 := claims.RequiresW9(giveaway.RequireW9, giveaway.PrizeValue, giveaway.W9Threshold)

	w9File := formFile(r, "w9Document")
	idFile := formFile(r, "idDocument")
	if needW9 && w9File == nil {
		jsonError(w, "a W-9 document is required for this prize", http.StatusBadRequest)
		return
	}
	if giveaway.RequireID && idFile == nil {
		jsonError(w, "an ID document is required for this prize", http.StatusBadRequest)
		return
	}

	var saved []string
	cleanup := func() {
		for _, name := range saved {
			if err := h.uploads.Remove(name); err != nil {
				log.Printf("Error removing claim document %s: %v", name, err)
			}
		}
	}

	var w9URL, idURL string
	if w9File != nil {
		sf, err := h.uploads.Save(w9File)
		if err != nil {
			jsonError(w, "w9Document: "+uploadErrMessage(err), uploadErrStatus(err))
			return
		}
		saved = append(saved, sf.Filename)
		w9URL = sf.URL
	}
	if idFile != nil {
		sf, err := h.uploads.Save(idFile)
		if err != nil {
			cleanup()
			jsonError(w, "idDocument: "+uploadErrMessage(err), uploadErrStatus(err))
			return
		}
		saved = append(saved, sf.Filename)
		idURL = sf.URL
	}

	claim := &models.PrizeClaim{
		ID:                uuid.New().String(),
		WinnerID:          winner.ID,
		LegalName:         legalName,
		AddressLine1:      addressLine1,
		AddressLine2:      addressLine2,
		City:              city,
		State:             state,
		ZipCode:           zipCode,
		W9DocumentURL:     w9URL,
		IDDocumentURL:     idURL,
		Verified:          false,
		FulfillmentStatus: models.FulfillmentPending,
		CreatedAt:         now,
	}

	if err := h.db.CreatePrizeClaim(claim); err != nil {
		cleanup()
		log.Printf("Error creating prize claim for winner %s: %v", winner.ID, err)
		// A race on the UNIQUE winner_id constraint means someone beat us.
		if existing, lerr := h.db.GetPrizeClaimByWinner(winner.ID); lerr == nil && existing != nil {
			jsonError(w, "this prize has already been claimed", http.StatusConflict)
			return
		}
		jsonError(w, "failed to submit claim", http.StatusInternalServerError)
		return
	}

	if err := h.db.MarkWinnerClaimed(winner.ID, now); err != nil {
		log.Printf("Error marking winner %s claimed: %v", winner.ID, err)
	}

	jsonCreated(w, claim)
}

func formFile(r *http.Request, name string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File[name]
	if len(headers) == 0 {
		return nil
	}
	return headers[0]
}

func uploadErrMessage(err error) string {
	switch {
	case errors.Is(err, uploads.ErrTooLarge):
		return "file exceeds the 10MB limit"
	case errors.Is(err, uploads.ErrBadType):
		return "file must be a PDF, JPEG, or PNG"
	default:
		return "failed to store file"
	}
}

func uploadErrStatus(err error) int {
	if errors.Is(err, uploads.ErrTooLarge) || errors.Is(err, uploads.ErrBadType) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
