package database

import (
	"strings"
	"testing"
	"time"

	"github.com/ozarkhomeloans/portal/pkg/models"
)

func testGiveaway(id, slug string) *models.Giveaway {
	now := time.Now().Truncate(time.Second)
	value := 750.0
	end := now.Add(30 * 24 * time.Hour)
	return &models.Giveaway{
		ID:               id,
		Title:            "Smart Home Giveaway",
		Slug:             slug,
		Description:      "Win a smart home bundle",
		Rules:            "One entry per household.",
		PrizeTitle:       "Smart Home Bundle",
		PrizeValue:       &value,
		PrizeImages:      []string{"/uploads/bundle.jpg"},
		EndDate:          &end,
		NumWinners:       1,
		AlternateWinners: 2,
		RequireW9:        true,
		W9Threshold:      600,
		RestrictedStates: []string{"NY", "FL"},
		EntryType:        models.EntryTypeBoth,
		DeliveryMethod:   "shipping",
		Status:           models.GiveawayStatusDraft,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestDB_GiveawayRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	g := testGiveaway("gw-1", "smart-home")
	if err := db.CreateGiveaway(g); err != nil {
		t.Fatalf("CreateGiveaway: %v", err)
	}

	got, err := db.GetGiveaway("gw-1")
	if err != nil {
		t.Fatalf("GetGiveaway: %v", err)
	}
	if got == nil {
		t.Fatal("GetGiveaway returned nil")
	}
	if got.PrizeValue == nil || *got.PrizeValue != 750.0 {
		t.Errorf("PrizeValue = %v, want 750", got.PrizeValue)
	}
	if !got.RequireW9 || got.W9Threshold != 600 {
		t.Errorf("W9 fields = %v / %v", got.RequireW9, got.W9Threshold)
	}
	if len(got.RestrictedStates) != 2 || got.RestrictedStates[0] != "NY" {
		t.Errorf("RestrictedStates = %v", got.RestrictedStates)
	}
	if got.EndDate == nil {
		t.Error("EndDate = nil")
	}
}

func TestDB_GiveawayNilPrizeValue(t *testing.T) {
	db := setupTestDB(t)

	g := testGiveaway("gw-nil", "no-value")
	g.PrizeValue = nil
	if err := db.CreateGiveaway(g); err != nil {
		t.Fatalf("CreateGiveaway: %v", err)
	}

	got, err := db.GetGiveaway("gw-nil")
	if err != nil {
		t.Fatalf("GetGiveaway: %v", err)
	}
	if got.PrizeValue != nil {
		t.Errorf("PrizeValue = %v, want nil", *got.PrizeValue)
	}
}

func TestDB_ListGiveawaysByStatus(t *testing.T) {
	db := setupTestDB(t)

	a := testGiveaway("gw-a", "gw-a")
	b := testGiveaway("gw-b", "gw-b")
	b.Status = models.GiveawayStatusActive
	for _, g := range []*models.Giveaway{a, b} {
		if err := db.CreateGiveaway(g); err != nil {
			t.Fatalf("CreateGiveaway: %v", err)
		}
	}

	all, err := db.ListGiveaways("")
	if err != nil {
		t.Fatalf("ListGiveaways: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, want 2", len(all))
	}

	active, err := db.ListGiveaways(models.GiveawayStatusActive)
	if err != nil {
		t.Fatalf("ListGiveaways(active): %v", err)
	}
	if len(active) != 1 || active[0].ID != "gw-b" {
		t.Errorf("active = %+v", active)
	}
}

func TestDB_UpdateAndDeleteGiveaway(t *testing.T) {
	db := setupTestDB(t)

	g := testGiveaway("gw-u", "gw-u")
	if err := db.CreateGiveaway(g); err != nil {
		t.Fatalf("CreateGiveaway: %v", err)
	}

	g.Title = "Holiday Giveaway"
	g.Status = models.GiveawayStatusActive
	g.PrizeValue = nil
	if err := db.UpdateGiveaway(g); err != nil {
		t.Fatalf("UpdateGiveaway: %v", err)
	}

	got, err := db.GetGiveaway("gw-u")
	if err != nil {
		t.Fatalf("GetGiveaway: %v", err)
	}
	if got.Title != "Holiday Giveaway" || got.Status != models.GiveawayStatusActive {
		t.Errorf("update not applied: %+v", got)
	}
	if got.PrizeValue != nil {
		t.Errorf("PrizeValue = %v, want nil", *got.PrizeValue)
	}

	if err := db.DeleteGiveaway("gw-u"); err != nil {
		t.Fatalf("DeleteGiveaway: %v", err)
	}
	got, err = db.GetGiveaway("gw-u")
	if err != nil {
		t.Fatalf("GetGiveaway after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestDB_WinnerByToken(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now().Truncate(time.Second)

	g := testGiveaway("gw-w", "gw-w")
	if err := db.CreateGiveaway(g); err != nil {
		t.Fatalf("CreateGiveaway: %v", err)
	}

	deadline := now.Add(14 * 24 * time.Hour)
	w := &models.GiveawayWinner{
		ID:            "win-1",
		GiveawayID:    "gw-w",
		EntryID:       "entry-42",
		WinnerType:    models.WinnerTypePrimary,
		Status:        "pending",
		ClaimToken:    "a1b2c3d4e5f60718293a4b5c6d7e8f90",
		ClaimDeadline: &deadline,
		CreatedAt:     now,
	}
	if err := db.CreateWinner(w); err != nil {
		t.Fatalf("CreateWinner: %v", err)
	}

	got, err := db.GetWinnerByToken("a1b2c3d4e5f60718293a4b5c6d7e8f90")
	if err != nil {
		t.Fatalf("GetWinnerByToken: %v", err)
	}
	if got == nil || got.ID != "win-1" {
		t.Fatalf("GetWinnerByToken = %+v", got)
	}
	if got.ClaimedAt != nil {
		t.Error("ClaimedAt should start nil")
	}
	if got.ClaimDeadline == nil {
		t.Error("ClaimDeadline = nil")
	}

	missing, err := db.GetWinnerByToken("not-a-token")
	if err != nil {
		t.Fatalf("GetWinnerByToken (missing): %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown token, got %+v", missing)
	}
}

func TestDB_DuplicateClaimTokenRejected(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now().Truncate(time.Second)

	g := testGiveaway("gw-d", "gw-d")
	if err := db.CreateGiveaway(g); err != nil {
		t.Fatalf("CreateGiveaway: %v", err)
	}

	w1 := &models.GiveawayWinner{ID: "win-a", GiveawayID: "gw-d", ClaimToken: "tok-same", WinnerType: models.WinnerTypePrimary, Status: "pending", CreatedAt: now}
	w2 := &models.GiveawayWinner{ID: "win-b", GiveawayID: "gw-d", ClaimToken: "tok-same", WinnerType: models.WinnerTypeAlternate, Status: "pending", CreatedAt: now}

	if err := db.CreateWinner(w1); err != nil {
		t.Fatalf("CreateWinner: %v", err)
	}
	if err := db.CreateWinner(w2); err == nil {
		t.Error("expected UNIQUE violation for duplicate claim token")
	}
}

func TestDB_MarkWinnerClaimed(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now().Truncate(time.Second)

	g := testGiveaway("gw-c", "gw-c")
	if err := db.CreateGiveaway(g); err != nil {
		t.Fatalf("CreateGiveaway: %v", err)
	}
	w := &models.GiveawayWinner{ID: "win-c", GiveawayID: "gw-c", ClaimToken: "tok-c", WinnerType: models.WinnerTypePrimary, Status: "pending", CreatedAt: now}
	if err := db.CreateWinner(w); err != nil {
		t.Fatalf("CreateWinner: %v", err)
	}

	if err := db.MarkWinnerClaimed("win-c", now); err != nil {
		t.Fatalf("MarkWinnerClaimed: %v", err)
	}

	got, err := db.GetWinner("win-c")
	if err != nil {
		t.Fatalf("GetWinner: %v", err)
	}
	if got.ClaimedAt == nil {
		t.Fatal("ClaimedAt still nil after MarkWinnerClaimed")
	}
}

func TestDB_PrizeClaimOncePerWinner(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now().Truncate(time.Second)

	g := testGiveaway("gw-p", "gw-p")
	if err := db.CreateGiveaway(g); err != nil {
		t.Fatalf("CreateGiveaway: %v", err)
	}
	w := &models.GiveawayWinner{ID: "win-p", GiveawayID: "gw-p", ClaimToken: "tok-p", WinnerType: models.WinnerTypePrimary, Status: "pending", CreatedAt: now}
	if err := db.CreateWinner(w); err != nil {
		t.Fatalf("CreateWinner: %v", err)
	}

	c := &models.PrizeClaim{
		ID:                "claim-1",
		WinnerID:          "win-p",
		LegalName:         "Jane Q. Winner",
		AddressLine1:      "100 Main St",
		City:              "Little Rock",
		State:             "AR",
		ZipCode:           "72201",
		FulfillmentStatus: models.FulfillmentPending,
		CreatedAt:         now,
	}
	if err := db.CreatePrizeClaim(c); err != nil {
		t.Fatalf("CreatePrizeClaim: %v", err)
	}

	got, err := db.GetPrizeClaimByWinner("win-p")
	if err != nil {
		t.Fatalf("GetPrizeClaimByWinner: %v", err)
	}
	if got == nil || got.LegalName != "Jane Q. Winner" {
		t.Fatalf("GetPrizeClaimByWinner = %+v", got)
	}

	dup := &models.PrizeClaim{
		ID: "claim-2", WinnerID: "win-p", LegalName: "Someone Else",
		AddressLine1: "1 Oak St", City: "Conway", State: "AR", ZipCode: "72032",
		FulfillmentStatus: models.FulfillmentPending, CreatedAt: now,
	}
	err = db.CreatePrizeClaim(dup)
	if err == nil {
		t.Fatal("expected UNIQUE violation for second claim on same winner")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unique") {
		t.Logf("constraint error text: %v", err)
	}
}

func TestDB_UpdatePrizeClaimStatus(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now().Truncate(time.Second)

	g := testGiveaway("gw-f", "gw-f")
	if err := db.CreateGiveaway(g); err != nil {
		t.Fatalf("CreateGiveaway: %v", err)
	}
	w := &models.GiveawayWinner{ID: "win-f", GiveawayID: "gw-f", ClaimToken: "tok-f", WinnerType: models.WinnerTypePrimary, Status: "pending", CreatedAt: now}
	if err := db.CreateWinner(w); err != nil {
		t.Fatalf("CreateWinner: %v", err)
	}
	c := &models.PrizeClaim{
		ID: "claim-f", WinnerID: "win-f", LegalName: "T",
		AddressLine1: "1 St", City: "C", State: "AR", ZipCode: "72201",
		FulfillmentStatus: models.FulfillmentPending, CreatedAt: now,
	}
	if err := db.CreatePrizeClaim(c); err != nil {
		t.Fatalf("CreatePrizeClaim: %v", err)
	}

	if err := db.UpdatePrizeClaimStatus("claim-f", true, models.FulfillmentFulfilled); err != nil {
		t.Fatalf("UpdatePrizeClaimStatus: %v", err)
	}

	got, err := db.GetPrizeClaim("claim-f")
	if err != nil {
		t.Fatalf("GetPrizeClaim: %v", err)
	}
	if !got.Verified || got.FulfillmentStatus != models.FulfillmentFulfilled {
		t.Errorf("status = %+v", got)
	}
}
