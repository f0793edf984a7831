package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ResendService sends contact form emails through the Resend HTTP API
type ResendService struct {
	apiKey string
	apiURL string
	from   string
	to     string
	client *http.Client
}

// NewResendService creates a new Resend service
func NewResendService(apiKey, apiURL, from, to string) *ResendService {
	return &ResendService{
		apiKey: apiKey,
		apiURL: apiURL,
		from:   from,
		to:     to,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// resendEmail represents a Resend API email payload
type resendEmail struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// SendResult carries the dispatch outcome: the HTTP status returned by the
// Resend API and its decoded body, which is echoed to the client on failure.
type SendResult struct {
	StatusCode int
	Body       interface{}
}

// OK reports whether the dispatch was accepted
func (r *SendResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// SendContactEmail dispatches a contact form message as an HTML email.
// All user-supplied fields are HTML-escaped before interpolation.
func (s *ResendService) SendContactEmail(ctx context.Context, name, email, subject, message string) (*SendResult, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("resend API key not configured")
	}

	if subject == "" {
		subject = "(No Subject)"
	}

	html := fmt.Sprintf(
		"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Subject:</strong> %s</p>"+
			"<p><strong>Message:</strong> %s</p>",
		escapeHTML(name),
		escapeHTML(email),
		escapeHTML(subject),
		escapeHTML(message),
	)

	payload := resendEmail{
		From:    s.from,
		To:      s.to,
		Subject: fmt.Sprintf("Contact Form: %s", subject),
		HTML:    html,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resend email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create resend request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	// The body is opaque to us; decode whatever Resend returned so it can
	// be attached to the relay response on failure.
	var body interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		body = nil
	}

	return &SendResult{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escapeHTML escapes HTML special characters in user-supplied text
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
