package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendContactEmail(t *testing.T) {
	var received struct {
		From    string `json:"from"`
		To      string `json:"to"`
		Subject string `json:"subject"`
		HTML    string `json:"html"`
	}
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer server.Close()

	svc := NewResendService("re_key", server.URL, "contact@badr.lol", "inbox@badr.lol")

	result, err := svc.SendContactEmail(context.Background(), "Ada", "ada@example.com", "Hi", "Hello there")
	require.NoError(t, err)
	assert.True(t, result.OK())

	assert.Equal(t, "Bearer re_key", authHeader)
	assert.Equal(t, "contact@badr.lol", received.From)
	assert.Equal(t, "inbox@badr.lol", received.To)
	assert.Equal(t, "Contact Form: Hi", received.Subject)
	assert.Contains(t, received.HTML, "<strong>Name:</strong> Ada")
	assert.Contains(t, received.HTML, "<strong>Message:</strong> Hello there")
}

func TestSendContactEmailEscapesUserText(t *testing.T) {
	var received struct {
		HTML string `json:"html"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer server.Close()

	svc := NewResendService("re_key", server.URL, "contact@badr.lol", "contact@badr.lol")

	_, err := svc.SendContactEmail(
		context.Background(),
		`<script>alert("x")</script>`,
		"a@x.com",
		`"quoted" & <b>`,
		"1 < 2 > 0 & 'done'",
	)
	require.NoError(t, err)

	assert.NotContains(t, received.HTML, "<script>")
	assert.Contains(t, received.HTML, "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;")
	assert.Contains(t, received.HTML, "&quot;quoted&quot; &amp; &lt;b&gt;")
	assert.Contains(t, received.HTML, "1 &lt; 2 &gt; 0 &amp; &#39;done&#39;")
}

func TestSendContactEmailSubjectFallback(t *testing.T) {
	var received struct {
		Subject string `json:"subject"`
		HTML    string `json:"html"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer server.Close()

	svc := NewResendService("re_key", server.URL, "contact@badr.lol", "contact@badr.lol")

	_, err := svc.SendContactEmail(context.Background(), "Ada", "a@x.com", "", "Hello")
	require.NoError(t, err)

	assert.Equal(t, "Contact Form: (No Subject)", received.Subject)
	assert.Contains(t, received.HTML, "<strong>Subject:</strong> (No Subject)")
}

func TestSendContactEmailAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"name":"invalid_api_key","message":"API key is invalid"}`))
	}))
	defer server.Close()

	svc := NewResendService("re_bad_key", server.URL, "contact@badr.lol", "contact@badr.lol")

	result, err := svc.SendContactEmail(context.Background(), "Ada", "a@x.com", "Hi", "Hello")
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, http.StatusUnauthorized, result.StatusCode)

	body, ok := result.Body.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "invalid_api_key", body["name"])
}

func TestSendContactEmailMissingKey(t *testing.T) {
	svc := NewResendService("", "http://127.0.0.1:1", "contact@badr.lol", "contact@badr.lol")

	result, err := svc.SendContactEmail(context.Background(), "Ada", "a@x.com", "Hi", "Hello")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<b>", "&lt;b&gt;"},
		{"a & b", "a &amp; b"},
		{`say "hi"`, "say &quot;hi&quot;"},
		{"it's", "it&#39;s"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := escapeHTML(tt.in); got != tt.want {
				t.Errorf("escapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
