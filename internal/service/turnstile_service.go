package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TurnstileService handles Cloudflare Turnstile verification
type TurnstileService struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

// NewTurnstileService creates a new Turnstile service
func NewTurnstileService(secretKey, verifyURL string) *TurnstileService {
	return &TurnstileService{
		secretKey: secretKey,
		verifyURL: verifyURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// verifyRequest is the payload sent to the siteverify endpoint
type verifyRequest struct {
	Secret   string `json:"secret"`
	Response string `json:"response"`
}

// VerifyResult represents the response from Cloudflare's siteverify API
type VerifyResult struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Verify checks a Turnstile token against the siteverify endpoint.
// A result with Success=false is not an error; the caller decides how to
// report it. Errors cover transport and decoding failures only.
func (s *TurnstileService) Verify(ctx context.Context, token string) (*VerifyResult, error) {
	if s.secretKey == "" {
		return nil, fmt.Errorf("turnstile secret key not configured")
	}

	if token == "" {
		return nil, fmt.Errorf("turnstile token is required")
	}

	payload := verifyRequest{
		Secret:   s.secretKey,
		Response: token,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal turnstile request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create turnstile request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify turnstile token: %w", err)
	}
	defer resp.Body.Close()

	var result VerifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse turnstile response: %w", err)
	}

	return &result, nil
}
