package models

import "time"

// GiveawayStatus is the publication state of a giveaway.
type GiveawayStatus string

const (
	GiveawayStatusDraft  GiveawayStatus = "draft"
	GiveawayStatusActive GiveawayStatus = "active"
)

// EntryType controls which contact methods count as entries.
type EntryType string

const (
	EntryTypePhone EntryType = "phone"
	EntryTypeEmail EntryType = "email"
	EntryTypeBoth  EntryType = "both"
)

// Giveaway is a promotional giveaway configured by an admin.
type Giveaway struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Rules       string `json:"rules"`

	PrizeTitle       string   `json:"prize_title"`
	PrizeValue       *float64 `json:"prize_value"` // nil = unset; non-negative when set
	PrizeDescription string   `json:"prize_description"`
	PrizeImages      []string `json:"prize_images"`

	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	DrawingDate *time.Time `json:"drawing_date"`

	NumWinners         int    `json:"num_winners"`
	AlternateWinners   int    `json:"alternate_winners"`
	AlternateSelection string `json:"alternate_selection"`

	RequireW9   bool    `json:"require_w9"`
	W9Threshold float64 `json:"w9_threshold"`

	RestrictedStates []string  `json:"restricted_states"`
	EntryType        EntryType `json:"entry_type"`
	BonusEntries     int       `json:"bonus_entries"`
	RequireID        bool      `json:"require_id"`
	DeliveryMethod   string    `json:"delivery_method"`

	ButtonText  string         `json:"button_text"`
	ButtonStyle string         `json:"button_style"`
	Status      GiveawayStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WinnerType distinguishes primary winners from alternates.
type WinnerType string

const (
	WinnerTypePrimary   WinnerType = "primary"
	WinnerTypeAlternate WinnerType = "alternate"
)

// GiveawayWinner is a selected entry with a claim token and deadline.
// ClaimToken is the public key for the claim page and must be unguessable.
type GiveawayWinner struct {
	ID            string     `json:"id"`
	GiveawayID    string     `json:"giveaway_id"`
	EntryID       string     `json:"entry_id"`
	WinnerType    WinnerType `json:"winner_type"`
	Status        string     `json:"status"`
	ClaimToken    string     `json:"claim_token"`
	ClaimDeadline *time.Time `json:"claim_deadline"`
	ClaimedAt     *time.Time `json:"claimed_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// FulfillmentStatus is the delivery state of a submitted claim.
type FulfillmentStatus string

const (
	FulfillmentPending   FulfillmentStatus = "pending"
	FulfillmentFulfilled FulfillmentStatus = "fulfilled"
)

// PrizeClaim holds the claimant's shipping and identity information.
// Exactly one claim may exist per winner.
type PrizeClaim struct {
	ID                string            `json:"id"`
	WinnerID          string            `json:"winner_id"`
	LegalName         string            `json:"legal_name"`
	AddressLine1      string            `json:"address_line1"`
	AddressLine2      string            `json:"address_line2"`
	City              string            `json:"city"`
	State             string            `json:"state"`
	ZipCode           string            `json:"zip_code"`
	W9DocumentURL     string            `json:"w9_document_url"`
	IDDocumentURL     string            `json:"id_document_url"`
	Verified          bool              `json:"verified"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillment_status"`
	CreatedAt         time.Time         `json:"created_at"`
}
