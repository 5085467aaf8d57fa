// Package notify sends winner-notification SMS messages with the claim link.
// Delivery is synchronous and best-effort: a failed send is logged by the
// caller and never blocks winner creation.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const telnyxMessagesURL = "https://api.telnyx.com/v2/messages"

// Message is one outbound SMS.
type Message struct {
	To   string // E.164 destination, e.g. "+15015550123"
	Body string
}

// Sender is the interface any SMS backend must implement. Keeping it minimal
// means backends are trivially swappable.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NopSender discards messages. Used when no SMS backend is configured.
type NopSender struct{}

func (NopSender) Send(context.Context, Message) error { return nil }

// TelnyxSender sends outbound SMS via the Telnyx REST API using stdlib
// net/http only — no SDK dependency.
type TelnyxSender struct {
	apiKey     string
	fromNumber string
	httpClient *http.Client
}

// NewTelnyxSender creates a TelnyxSender ready to use.
func NewTelnyxSender(apiKey, fromNumber string) *TelnyxSender {
	return &TelnyxSender{
		apiKey:     apiKey,
		fromNumber: fromNumber,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type telnyxRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type telnyxResponse struct {
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// Send dispatches msg to the Telnyx API. It returns a non-nil error if the
// HTTP request fails or Telnyx returns a non-2xx status.
func (s *TelnyxSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(telnyxRequest{
		From: s.fromNumber,
		To:   msg.To,
		Text: msg.Body,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, telnyxMessagesURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telnyx returned %d: %s", resp.StatusCode, string(respBody))
	}

	var telResp telnyxResponse
	if err := json.Unmarshal(respBody, &telResp); err == nil && len(telResp.Errors) > 0 {
		return fmt.Errorf("telnyx error %s: %s", telResp.Errors[0].Code, telResp.Errors[0].Detail)
	}

	return nil
}

// ClaimLinkBody formats the winner-notification text.
func ClaimLinkBody(prizeTitle, claimURL string, deadline *time.Time) string {
	if deadline != nil {
		return fmt.Sprintf("You won %s! Claim your prize by %s: %s",
			prizeTitle, deadline.Format("Jan 2, 2006"), claimURL)
	}
	return fmt.Sprintf("You won %s! Claim your prize: %s", prizeTitle, claimURL)
}
