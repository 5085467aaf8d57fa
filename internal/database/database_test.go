package database

import (
	"os"
	"testing"
	"time"

	"github.com/ozarkhomeloans/portal/pkg/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "portal-test-*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	db, err := New(tmpFile.Name())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestDB_CreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now().Truncate(time.Second)

	u := &models.User{
		ID:           "user-001",
		Email:        "admin@ozarkhomeloans.com",
		Name:         "Admin",
		Role:         "admin",
		PasswordHash: "$2a$12$fake",
		CreatedAt:    now,
		UpdatedAt:    now,
		LastLoginAt:  now,
	}
	if err := db.CreateUser(u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := db.GetUserByEmail("admin@ozarkhomeloans.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got == nil {
		t.Fatal("GetUserByEmail returned nil")
	}
	if !got.IsAdmin() {
		t.Error("expected admin role")
	}

	missing, err := db.GetUserByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail (missing): %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown email, got %+v", missing)
	}
}

func TestDB_SessionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now().Truncate(time.Second)

	u := &models.User{
		ID: "user-s", Email: "s@example.com", Role: "user", PasswordHash: "x",
		CreatedAt: now, UpdatedAt: now, LastLoginAt: now,
	}
	if err := db.CreateUser(u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	s := &models.Session{
		ID: "sess-1", UserID: "user-s",
		ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}
	if err := db.CreateSession(s); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := db.GetSession("sess-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil {
		t.Fatal("GetSession returned nil for active session")
	}

	if err := db.DeleteSession("sess-1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	got, err = db.GetSession("sess-1")
	if err != nil {
		t.Fatalf("GetSession after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestDB_ExpiredSessionNotReturned(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now().Truncate(time.Second)

	u := &models.User{
		ID: "user-e", Email: "e@example.com", Role: "user", PasswordHash: "x",
		CreatedAt: now, UpdatedAt: now, LastLoginAt: now,
	}
	if err := db.CreateUser(u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	s := &models.Session{
		ID: "sess-old", UserID: "user-e",
		ExpiresAt: now.Add(-time.Hour), CreatedAt: now.Add(-2 * time.Hour),
	}
	if err := db.CreateSession(s); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := db.GetSession("sess-old")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Error("expected nil for expired session")
	}
}

func TestDB_Settings(t *testing.T) {
	db := setupTestDB(t)

	missing, err := db.GetSetting("navigation")
	if err != nil {
		t.Fatalf("GetSetting (missing): %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unwritten setting, got %s", missing)
	}

	doc := []byte(`[{"id":"m1","label":"Home","url":"/"}]`)
	if err := db.PutSetting("navigation", doc); err != nil {
		t.Fatalf("PutSetting: %v", err)
	}

	got, err := db.GetSetting("navigation")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if string(got) != string(doc) {
		t.Errorf("document = %s, want %s", got, doc)
	}

	// Overwrite is last-write-wins.
	doc2 := []byte(`[{"id":"m2","label":"Loans","url":"/loans"}]`)
	if err := db.PutSetting("navigation", doc2); err != nil {
		t.Fatalf("PutSetting (overwrite): %v", err)
	}
	got, err = db.GetSetting("navigation")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if string(got) != string(doc2) {
		t.Errorf("document = %s, want %s", got, doc2)
	}
}
