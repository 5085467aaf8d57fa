package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ozarkhomeloans/portal/internal/notify"
	"github.com/ozarkhomeloans/portal/pkg/models"
)

// validateGiveaway enforces the invariants on an incoming giveaway payload.
func validateGiveaway(g *models.Giveaway) error {
	if g.Title == "" {
		return fmt.Errorf("title is required")
	}
	if g.Slug == "" || !slugPattern.MatchString(g.Slug) {
		return fmt.Errorf("slug must be 2-64 characters, lowercase alphanumeric and hyphens")
	}
	if g.PrizeValue != nil && *g.PrizeValue < 0 {
		return fmt.Errorf("prize_value must be non-negative")
	}
	switch g.EntryType {
	case "", models.EntryTypePhone, models.EntryTypeEmail, models.EntryTypeBoth:
	default:
		return fmt.Errorf("entry_type must be phone, email, or both")
	}
	switch g.Status {
	case "", models.GiveawayStatusDraft, models.GiveawayStatusActive:
	default:
		return fmt.Errorf("status must be draft or active")
	}
	return nil
}

// ListGiveaways handles GET /api/giveaways.
func (h *Handler) ListGiveaways(w http.ResponseWriter, r *http.Request) {
	status := models.GiveawayStatus(r.URL.Query().Get("status"))
	giveaways, err := h.db.ListGiveaways(status)
	if err != nil {
		log.Printf("Error listing giveaways: %v", err)
		jsonError(w, "failed to list giveaways", http.StatusInternalServerError)
		return
	}
	if giveaways == nil {
		giveaways = []models.Giveaway{}
	}
	jsonData(w, giveaways)
}

// GetGiveaway handles GET /api/giveaways/{id}.
func (h *Handler) GetGiveaway(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := h.db.GetGiveaway(id)
	if err != nil {
		log.Printf("Error getting giveaway %s: %v", id, err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if g == nil {
		jsonError(w, "giveaway not found", http.StatusNotFound)
		return
	}
	jsonData(w, g)
}

// CreateGiveaway handles POST /api/giveaways.
func (h *Handler) CreateGiveaway(w http.ResponseWriter, r *http.Request) {
	var g models.Giveaway
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateGiveaway(&g); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	g.ID = uuid.New().String()
	if g.Status == "" {
		g.Status = models.GiveawayStatusDraft
	}
	if g.EntryType == "" {
		g.EntryType = models.EntryTypeBoth
	}
	if g.NumWinners <= 0 {
		g.NumWinners = 1
	}
	g.CreatedAt = now
	g.UpdatedAt = now

	if err := h.db.CreateGiveaway(&g); err != nil {
		log.Printf("Error creating giveaway: %v", err)
		jsonError(w, "failed to create giveaway", http.StatusInternalServerError)
		return
	}
	jsonCreated(w, g)
}

// UpdateGiveaway handles PUT /api/giveaways/{id}.
func (h *Handler) UpdateGiveaway(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.db.GetGiveaway(id)
	if err != nil {
		log.Printf("Error getting giveaway %s: %v", id, err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		jsonError(w, "giveaway not found", http.StatusNotFound)
		return
	}

	var g models.Giveaway
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateGiveaway(&g); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	g.ID = id
	g.CreatedAt = existing.CreatedAt
	if err := h.db.UpdateGiveaway(&g); err != nil {
		log.Printf("Error updating giveaway %s: %v", id, err)
		jsonError(w, "failed to update giveaway", http.StatusInternalServerError)
		return
	}
	jsonData(w, g)
}

// DeleteGiveaway handles DELETE /api/giveaways/{id}.
func (h *Handler) DeleteGiveaway(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.db.DeleteGiveaway(id); err != nil {
		log.Printf("Error deleting giveaway %s: %v", id, err)
		jsonError(w, "failed to delete giveaway", http.StatusInternalServerError)
		return
	}
	jsonData(w, map[string]string{"deleted": id})
}

// --- Winners ---

type createWinnerReq struct {
	EntryID      string `json:"entry_id"`
	WinnerType   string `json:"winner_type"`
	DeadlineDays int    `json:"deadline_days"`
	// Phone, when set, receives the claim link by SMS.
	Phone string `json:"phone"`
}

// CreateWinner handles POST /api/giveaways/{id}/winners. The server
// generates the claim token and deadline; they are never client-supplied.
func (h *Handler) CreateWinner(w http.ResponseWriter, r *http.Request) {
	giveawayID := chi.URLParam(r, "id")
	g, err := h.db.GetGiveaway(giveawayID)
	if err != nil {
		log.Printf("Error getting giveaway %s: %v", giveawayID, err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if g == nil {
		jsonError(w, "giveaway not found", http.StatusNotFound)
		return
	}

	var req createWinnerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	winnerType := models.WinnerType(req.WinnerType)
	switch winnerType {
	case "":
		winnerType = models.WinnerTypePrimary
	case models.WinnerTypePrimary, models.WinnerTypeAlternate:
	default:
		jsonError(w, "winner_type must be primary or alternate", http.StatusBadRequest)
		return
	}

	days := req.DeadlineDays
	if days <= 0 {
		days = 14
	}
	now := time.Now()
	deadline := now.Add(time.Duration(days) * 24 * time.Hour)

	winner := &models.GiveawayWinner{
		ID:            uuid.New().String(),
		GiveawayID:    giveawayID,
		EntryID:       req.EntryID,
		WinnerType:    winnerType,
		Status:        "pending",
		ClaimToken:    generateToken(),
		ClaimDeadline: &deadline,
		CreatedAt:     now,
	}

	if err := h.db.CreateWinner(winner); err != nil {
		log.Printf("Error creating winner for giveaway %s: %v", giveawayID, err)
		jsonError(w, "failed to create winner", http.StatusInternalServerError)
		return
	}

	// Best-effort claim-link SMS; delivery failure never fails the request.
	if req.Phone != "" {
		claimURL := h.cfg.Server.BaseURL + "/claim/" + winner.ClaimToken
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()
		if err := h.sms.Send(ctx, notify.Message{
			To:   req.Phone,
			Body: notify.ClaimLinkBody(g.PrizeTitle, claimURL, winner.ClaimDeadline),
		}); err != nil {
			log.Printf("Error sending claim link SMS for winner %s: %v", winner.ID, err)
		}
	}

	jsonCreated(w, winner)
}

// ListWinners handles GET /api/giveaways/{id}/winners.
func (h *Handler) ListWinners(w http.ResponseWriter, r *http.Request) {
	giveawayID := chi.URLParam(r, "id")
	winners, err := h.db.ListWinners(giveawayID)
	if err != nil {
		log.Printf("Error listing winners for %s: %v", giveawayID, err)
		jsonError(w, "failed to list winners", http.StatusInternalServerError)
		return
	}
	if winners == nil {
		winners = []models.GiveawayWinner{}
	}
	jsonData(w, winners)
}

// PatchWinner handles PATCH /api/giveaways/winners/{id} — status and
// deadline edits.
func (h *Handler) PatchWinner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	winner, err := h.db.GetWinner(id)
	if err != nil {
		log.Printf("Error getting winner %s: %v", id, err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if winner == nil {
		jsonError(w, "winner not found", http.StatusNotFound)
		return
	}

	var req struct {
		Status        *string    `json:"status"`
		ClaimDeadline *time.Time `json:"claim_deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Status != nil {
		winner.Status = *req.Status
	}
	if req.ClaimDeadline != nil {
		winner.ClaimDeadline = req.ClaimDeadline
	}

	if err := h.db.UpdateWinner(winner); err != nil {
		log.Printf("Error updating winner %s: %v", id, err)
		jsonError(w, "failed to update winner", http.StatusInternalServerError)
		return
	}
	jsonData(w, winner)
}

// PatchClaim handles PATCH /api/giveaways/claims/{id} — verified flag and
// fulfillment status.
func (h *Handler) PatchClaim(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claim, err := h.db.GetPrizeClaim(id)
	if err != nil {
		log.Printf("Error getting claim %s: %v", id, err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if claim == nil {
		jsonError(w, "claim not found", http.StatusNotFound)
		return
	}

	var req struct {
		Verified          *bool   `json:"verified"`
		FulfillmentStatus *string `json:"fulfillment_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Verified != nil {
		claim.Verified = *req.Verified
	}
	if req.FulfillmentStatus != nil {
		status := models.FulfillmentStatus(*req.FulfillmentStatus)
		if status != models.FulfillmentPending && status != models.FulfillmentFulfilled {
			jsonError(w, "fulfillment_status must be pending or fulfilled", http.StatusBadRequest)
			return
		}
		claim.FulfillmentStatus = status
	}

	if err := h.db.UpdatePrizeClaimStatus(id, claim.Verified, claim.FulfillmentStatus); err != nil {
		log.Printf("Error updating claim %s: %v", id, err)
		jsonError(w, "failed to update claim", http.StatusInternalServerError)
		return
	}
	jsonData(w, claim)
}
