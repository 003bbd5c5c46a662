package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// Mailer sends transactional email. The zero-configured mailer reports
// Configured() == false and refuses to send.
type Mailer interface {
	Configured() bool
	Send(ctx context.Context, to, subject, html string) error
}

type resendMailer struct {
	apiKey string
	sender string
	client *http.Client
}

// NewResendMailer builds a Resend-backed mailer. An empty API key yields a
// mailer that only reports itself unconfigured.
func NewResendMailer(apiKey, sender string) Mailer {
	return &resendMailer{
		apiKey: apiKey,
		sender: sender,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *resendMailer) Configured() bool {
	return m.apiKey != ""
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *resendMailer) Send(ctx context.Context, to, subject, html string) error {
	if !m.Configured() {
		return fmt.Errorf("mailer is not configured")
	}

	body, err := json.Marshal(resendRequest{
		From:    m.sender,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, detail)
	}

	log.Printf("email sent to %s: %s", to, subject)
	return nil
}
