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

func TestTurnstileVerifySuccess(t *testing.T) {
	var received struct {
		Secret   string `json:"secret"`
		Response string `json:"response"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"hostname":"badr.lol"}`))
	}))
	defer server.Close()

	svc := NewTurnstileService("secret-key", server.URL)

	result, err := svc.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "badr.lol", result.Hostname)
	assert.Equal(t, "secret-key", received.Secret)
	assert.Equal(t, "tok", received.Response)
}

func TestTurnstileVerifyFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"error-codes":["timeout-or-duplicate"]}`))
	}))
	defer server.Close()

	svc := NewTurnstileService("secret-key", server.URL)

	result, err := svc.Verify(context.Background(), "stale-tok")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"timeout-or-duplicate"}, result.ErrorCodes)
}

func TestTurnstileVerifyErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	tests := []struct {
		name   string
		secret string
		url    string
		token  string
	}{
		{"missing secret", "", server.URL, "tok"},
		{"missing token", "secret-key", server.URL, ""},
		{"unreachable service", "secret-key", "http://127.0.0.1:1", "tok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTurnstileService(tt.secret, tt.url)
			result, err := svc.Verify(context.Background(), tt.token)
			assert.Error(t, err)
			assert.Nil(t, result)
		})
	}
}

func TestTurnstileVerifyBadResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	svc := NewTurnstileService("secret-key", server.URL)

	result, err := svc.Verify(context.Background(), "tok")
	assert.Error(t, err)
	assert.Nil(t, result)
}
