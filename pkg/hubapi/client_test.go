package hubapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamzip/tap-hubspot/pkg/auth"
)

func TestGetRetriesServerErrorsWithBackoff(t *testing.T) {
	mux := http.NewServeMux()
	attempts := 0
	mux.HandleFunc("/owners", func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})
	client := newTestClient(t, mux)

	var delays []time.Duration
	client.retry.Sleep = func(d time.Duration) { delays = append(delays, d) }

	data, err := client.Get(context.Background(), client.BaseURL+"/owners", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, data)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, delays)
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	mux := http.NewServeMux()
	attempts := 0
	mux.HandleFunc("/owners", func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "no such portal", http.StatusNotFound)
	})
	client := newTestClient(t, mux)
	client.retry.Sleep = func(time.Duration) { t.Fatal("must not sleep on a 4xx") }

	_, err := client.Get(context.Background(), client.BaseURL+"/owners", nil)
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.True(t, IsFatal(err))

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Contains(t, reqErr.Body, "no such portal")
}

func TestGetGivesUpAfterMaxAttempts(t *testing.T) {
	mux := http.NewServeMux()
	attempts := 0
	mux.HandleFunc("/owners", func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	})
	client := newTestClient(t, mux)

	_, err := client.Get(context.Background(), client.BaseURL+"/owners", nil)
	require.Error(t, err)
	assert.Equal(t, 5, attempts)
	assert.Contains(t, err.Error(), "giving up after 5 attempts")
}

func TestGetSendsBearerAndUserAgent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(TokenPath, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "secret-token", "refresh_token": "next", "expires_in": 21600,
		})
	})
	var gotAuth, gotAgent string
	mux.HandleFunc("/owners", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		_ = json.NewEncoder(w).Encode([]any{})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	manager := auth.NewTokenManager(server.Client(), server.URL+TokenPath, auth.Credentials{RefreshToken: "seed"})
	client := NewClient(server.Client(), manager, "tap-hubspot (support@example.com)")
	client.BaseURL = server.URL

	_, err := client.Get(context.Background(), client.BaseURL+"/owners", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "tap-hubspot (support@example.com)", gotAgent)
}

func TestGetFailsFastOnAuthFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(TokenPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	apiCalls := 0
	mux.HandleFunc("/owners", func(w http.ResponseWriter, r *http.Request) { apiCalls++ })
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	manager := auth.NewTokenManager(server.Client(), server.URL+TokenPath, auth.Credentials{RefreshToken: "seed"})
	client := NewClient(server.Client(), manager, "")
	client.BaseURL = server.URL
	client.retry.Sleep = func(time.Duration) { t.Fatal("must not retry an auth failure") }

	_, err := client.Get(context.Background(), client.BaseURL+"/owners", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthFailed)
	assert.True(t, IsFatal(err))
	assert.Zero(t, apiCalls)
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "https://api.hubapi.com/owners/v2/owners", Owners.URL(BaseURL))
	assert.Equal(t, "https://api.hubapi.com/deals/v1/deal/42", DealsDetail.URL(BaseURL, "42"))
}
