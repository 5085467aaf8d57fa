package token

import (
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-signing-key", "portal.ozarkhomeloans.com")

	tok, err := svc.GenerateToken("user-1", "admin@ozarkhomeloans.com", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
	if claims.Issuer != "portal.ozarkhomeloans.com" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestValidate_WrongKey(t *testing.T) {
	svc := New("key-a", "issuer")
	tok, err := svc.GenerateToken("u", "e@x.com", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := New("key-b", "issuer")
	if _, err := other.ValidateToken(tok); err == nil {
		t.Error("expected validation failure with wrong key")
	}
}

func TestValidate_Expired(t *testing.T) {
	svc := New("key", "issuer")
	tok, err := svc.GenerateToken("u", "e@x.com", "admin", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := svc.ValidateToken(tok); err == nil {
		t.Error("expected validation failure for expired token")
	}
}

func TestGenerateSigningKey(t *testing.T) {
	a, err := GenerateSigningKey()
	if err != nil {
		t.Fatalf("GenerateSigningKey: %v", err)
	}
	b, err := GenerateSigningKey()
	if err != nil {
		t.Fatalf("GenerateSigningKey: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(a))
	}
	if a == b {
		t.Error("two generated keys are identical")
	}
}
