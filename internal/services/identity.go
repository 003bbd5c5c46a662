package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Identity is the profile returned by the external login provider.
type Identity struct {
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Picture *string `json:"picture"`
}

// IdentityVerifier exchanges the provider's one-time session ID for the
// caller's verified profile.
type IdentityVerifier interface {
	Verify(ctx context.Context, sessionID string) (*Identity, error)
}

type httpIdentityVerifier struct {
	verifyURL string
	client    *http.Client
}

func NewHTTPIdentityVerifier(verifyURL string) IdentityVerifier {
	return &httpIdentityVerifier{
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *httpIdentityVerifier) Verify(ctx context.Context, sessionID string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.verifyURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity verification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: identity provider rejected session", ErrUnauthenticated)
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("%w: identity response missing email", ErrUnauthenticated)
	}
	return &identity, nil
}
