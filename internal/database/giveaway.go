package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ozarkhomeloans/portal/pkg/models"
)

// --- Giveaway operations ---

const giveawayColumns = `id, title, slug, description, rules,
	prize_title, prize_value, prize_description, prize_images,
	start_date, end_date, drawing_date,
	num_winners, alternate_winners, alternate_selection,
	require_w9, w9_threshold, restricted_states, entry_type, bonus_entries,
	require_id, delivery_method, button_text, button_style, status,
	created_at, updated_at`

func scanGiveaway(row interface{ Scan(...interface{}) error }) (*models.Giveaway, error) {
	g := &models.Giveaway{}
	var prizeImages, restrictedStates string
	err := row.Scan(
		&g.ID, &g.Title, &g.Slug, &g.Description, &g.Rules,
		&g.PrizeTitle, &g.PrizeValue, &g.PrizeDescription, &prizeImages,
		&g.StartDate, &g.EndDate, &g.DrawingDate,
		&g.NumWinners, &g.AlternateWinners, &g.AlternateSelection,
		&g.RequireW9, &g.W9Threshold, &restrictedStates, &g.EntryType, &g.BonusEntries,
		&g.RequireID, &g.DeliveryMethod, &g.ButtonText, &g.ButtonStyle, &g.Status,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(prizeImages), &g.PrizeImages); err != nil {
		return nil, fmt.Errorf("decode giveaway %s: %w", g.ID, err)
	}
	if err := json.Unmarshal([]byte(restrictedStates), &g.RestrictedStates); err != nil {
		return nil, fmt.Errorf("decode giveaway %s: %w", g.ID, err)
	}
	return g, nil
}

// CreateGiveaway inserts a new giveaway.
func (db *DB) CreateGiveaway(g *models.Giveaway) error {
	const q = `INSERT INTO giveaways (id, title, slug, description, rules,
	           prize_title, prize_value, prize_description, prize_images,
	           start_date, end_date, drawing_date,
	           num_winners, alternate_winners, alternate_selection,
	           require_w9, w9_threshold, restricted_states, entry_type, bonus_entries,
	           require_id, delivery_method, button_text, button_style, status,
	           created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.conn.Exec(q,
		g.ID, g.Title, g.Slug, g.Description, g.Rules,
		g.PrizeTitle, g.PrizeValue, g.PrizeDescription, jsonColumn(g.PrizeImages),
		g.StartDate, g.EndDate, g.DrawingDate,
		g.NumWinners, g.AlternateWinners, g.AlternateSelection,
		g.RequireW9, g.W9Threshold, jsonColumn(g.RestrictedStates), g.EntryType, g.BonusEntries,
		g.RequireID, g.DeliveryMethod, g.ButtonText, g.ButtonStyle, g.Status,
		g.CreatedAt, g.UpdatedAt,
	)
	return err
}

// GetGiveaway returns a giveaway by ID.
func (db *DB) GetGiveaway(id string) (*models.Giveaway, error) {
	q := `SELECT ` + giveawayColumns + ` FROM giveaways WHERE id = ?`
	return scanGiveaway(db.conn.QueryRow(q, id))
}

// ListGiveaways returns giveaways newest first, optionally filtered by status.
func (db *DB) ListGiveaways(status models.GiveawayStatus) ([]models.Giveaway, error) {
	q := `SELECT ` + giveawayColumns + ` FROM giveaways`
	var args []interface{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, string(status))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var giveaways []models.Giveaway
	for rows.Next() {
		g, err := scanGiveaway(rows)
		if err != nil {
			return nil, err
		}
		giveaways = append(giveaways, *g)
	}
	return giveaways, rows.Err()
}

// UpdateGiveaway updates an existing giveaway.
func (db *DB) UpdateGiveaway(g *models.Giveaway) error {
	const q = `UPDATE giveaways SET title = ?, slug = ?, description = ?, rules = ?,
	           prize_title = ?, prize_value = ?, prize_description = ?, prize_images = ?,
	           start_date = ?, end_date = ?, drawing_date = ?,
	           num_winners = ?, alternate_winners = ?, alternate_selection = ?,
	           require_w9 = ?, w9_threshold = ?, restricted_states = ?, entry_type = ?, bonus_entries = ?,
	           require_id = ?, delivery_method = ?, button_text = ?, button_style = ?, status = ?,
	           updated_at = ? WHERE id = ?`
	_, err := db.conn.Exec(q,
		g.Title, g.Slug, g.Description, g.Rules,
		g.PrizeTitle, g.PrizeValue, g.PrizeDescription, jsonColumn(g.PrizeImages),
		g.StartDate, g.EndDate, g.DrawingDate,
		g.NumWinners, g.AlternateWinners, g.AlternateSelection,
		g.RequireW9, g.W9Threshold, jsonColumn(g.RestrictedStates), g.EntryType, g.BonusEntries,
		g.RequireID, g.DeliveryMethod, g.ButtonText, g.ButtonStyle, g.Status,
		time.Now(), g.ID,
	)
	return err
}

// DeleteGiveaway removes a giveaway by ID. Winners and claims cascade.
func (db *DB) DeleteGiveaway(id string) error {
	_, err := db.conn.Exec(`DELETE FROM giveaways WHERE id = ?`, id)
	return err
}

// --- Winner operations ---

const winnerColumns = `id, giveaway_id, entry_id, winner_type, status, claim_token, claim_deadline, claimed_at, created_at`

func scanWinner(row interface{ Scan(...interface{}) error }) (*models.GiveawayWinner, error) {
	w := &models.GiveawayWinner{}
	err := row.Scan(
		&w.ID, &w.GiveawayID, &w.EntryID, &w.WinnerType, &w.Status,
		&w.ClaimToken, &w.ClaimDeadline, &w.ClaimedAt, &w.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return w, err
}

// CreateWinner inserts a new winner.
func (db *DB) CreateWinner(w *models.GiveawayWinner) error {
	const q = `INSERT INTO giveaway_winners (id, giveaway_id, entry_id, winner_type, status, claim_token, claim_deadline, claimed_at, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.conn.Exec(q, w.ID, w.GiveawayID, w.EntryID, w.WinnerType, w.Status, w.ClaimToken, w.ClaimDeadline, w.ClaimedAt, w.CreatedAt)
	return err
}

// GetWinner returns a winner by ID.
func (db *DB) GetWinner(id string) (*models.GiveawayWinner, error) {
	q := `SELECT ` + winnerColumns + ` FROM giveaway_winners WHERE id = ?`
	return scanWinner(db.conn.QueryRow(q, id))
}

// GetWinnerByToken returns a winner by claim token. The token is the only
// public key for the claim page.
func (db *DB) GetWinnerByToken(token string) (*models.GiveawayWinner, error) {
	q := `SELECT ` + winnerColumns + ` FROM giveaway_winners WHERE claim_token = ?`
	return scanWinner(db.conn.QueryRow(q, token))
}

// ListWinners returns all winners for a giveaway.
func (db *DB) ListWinners(giveawayID string) ([]models.GiveawayWinner, error) {
	q := `SELECT ` + winnerColumns + ` FROM giveaway_winners WHERE giveaway_id = ? ORDER BY created_at`
	rows, err := db.conn.Query(q, giveawayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var winners []models.GiveawayWinner
	for rows.Next() {
		w, err := scanWinner(rows)
		if err != nil {
			return nil, err
		}
		winners = append(winners, *w)
	}
	return winners, rows.Err()
}

// UpdateWinner updates status, deadline, and claimed_at for a winner.
func (db *DB) UpdateWinner(w *models.GiveawayWinner) error {
	const q = `UPDATE giveaway_winners SET status = ?, claim_deadline = ?, claimed_at = ? WHERE id = ?`
	_, err := db.conn.Exec(q, w.Status, w.ClaimDeadline, w.ClaimedAt, w.ID)
	return err
}

// MarkWinnerClaimed sets claimed_at for a winner.
func (db *DB) MarkWinnerClaimed(id string, t time.Time) error {
	_, err := db.conn.Exec(`UPDATE giveaway_winners SET claimed_at = ? WHERE id = ?`, t, id)
	return err
}

// --- Prize claim operations ---

const claimColumns = `id, winner_id, legal_name, address_line1, address_line2, city, state, zip_code,
	w9_document_url, id_document_url, verified, fulfillment_status, created_at`

func scanClaim(row interface{ Scan(...interface{}) error }) (*models.PrizeClaim, error) {
	c := &models.PrizeClaim{}
	err := row.Scan(
		&c.ID, &c.WinnerID, &c.LegalName, &c.AddressLine1, &c.AddressLine2,
		&c.City, &c.State, &c.ZipCode, &c.W9DocumentURL, &c.IDDocumentURL,
		&c.Verified, &c.FulfillmentStatus, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// CreatePrizeClaim inserts a new claim. The UNIQUE constraint on winner_id
// enforces at most one claim per winner.
func (db *DB) CreatePrizeClaim(c *models.PrizeClaim) error {
	const q = `INSERT INTO prize_claims (id, winner_id, legal_name, address_line1, address_line2, city, state, zip_code,
	           w9_document_url, id_document_url, verified, fulfillment_status, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.conn.Exec(q,
		c.ID, c.WinnerID, c.LegalName, c.AddressLine1, c.AddressLine2,
		c.City, c.State, c.ZipCode, c.W9DocumentURL, c.IDDocumentURL,
		c.Verified, c.FulfillmentStatus, c.CreatedAt,
	)
	return err
}

// GetPrizeClaim returns a claim by ID.
func (db *DB) GetPrizeClaim(id string) (*models.PrizeClaim, error) {
	q := `SELECT ` + claimColumns + ` FROM prize_claims WHERE id = ?`
	return scanClaim(db.conn.QueryRow(q, id))
}

// GetPrizeClaimByWinner returns the claim for a winner, if one exists.
func (db *DB) GetPrizeClaimByWinner(winnerID string) (*models.PrizeClaim, error) {
	q := `SELECT ` + claimColumns + ` FROM prize_claims WHERE winner_id = ?`
	return scanClaim(db.conn.QueryRow(q, winnerID))
}

// UpdatePrizeClaimStatus sets verified and fulfillment_status on a claim.
func (db *DB) UpdatePrizeClaimStatus(id string, verified bool, status models.FulfillmentStatus) error {
	const q = `UPDATE prize_claims SET verified = ?, fulfillment_status = ? WHERE id = ?`
	_, err := db.conn.Exec(q, verified, status, id)
	return err
}
