package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Mailer delivers outbound mail. The Resend implementation is the only one;
// a nil Mailer is treated as "email disabled" by callers.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

type resendMailer struct {
	apiKey string
	from   string
	client *http.Client
}

// NewResendMailer reads RESEND_API_KEY and RESEND_FROM_EMAIL from the
// environment. Returns an error when the API key is missing so the caller
// can decide to run without email.
func NewResendMailer() (Mailer, error) {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is not set")
	}

	from := os.Getenv("RESEND_FROM_EMAIL")
	if from == "" {
		from = "Devfolio <onboarding@resend.dev>"
	}

	return &resendMailer{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html"`
}

type resendError struct {
	Message string `json:"message"`
}

func (m *resendMailer) Send(ctx context.Context, to, subject, html string) error {
	payload, err := json.Marshal(resendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		var apiErr resendError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("resend api error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("resend api returned status %d", resp.StatusCode)
	}

	return nil
}
