package notify

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestClaimLinkBody(t *testing.T) {
	deadline := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	body := ClaimLinkBody("Smart Home Bundle", "https://example.com/claim/abc", &deadline)

	if !strings.Contains(body, "Smart Home Bundle") {
		t.Errorf("body missing prize title: %q", body)
	}
	if !strings.Contains(body, "Mar 15, 2026") {
		t.Errorf("body missing deadline: %q", body)
	}
	if !strings.Contains(body, "https://example.com/claim/abc") {
		t.Errorf("body missing claim URL: %q", body)
	}
}

func TestClaimLinkBodyNoDeadline(t *testing.T) {
	body := ClaimLinkBody("Gift Card", "https://example.com/claim/xyz", nil)
	if strings.Contains(body, "by ") {
		t.Errorf("body should not mention a deadline: %q", body)
	}
	if !strings.Contains(body, "Gift Card") {
		t.Errorf("body missing prize title: %q", body)
	}
}

func TestNopSender(t *testing.T) {
	if err := (NopSender{}).Send(context.Background(), Message{To: "+15015550123", Body: "hi"}); err != nil {
		t.Fatalf("nop send: %v", err)
	}
}
