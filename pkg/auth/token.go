package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/streamzip/tap-hubspot/constants"
	"github.com/streamzip/tap-hubspot/utils/logger"
)

// Credentials is the OAuth client identity plus the current refresh token.
type Credentials struct {
	RedirectURI  string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenManager owns the access credential and its expiry. All sync operations
// are sequential, so no locking is needed around refresh.
type TokenManager struct {
	credentials Credentials
	tokenURL    string
	client      *http.Client
	now         func() time.Time

	accessToken string
	expires     time.Time
}

func NewTokenManager(client *http.Client, tokenURL string, credentials Credentials) *TokenManager {
	return &TokenManager{
		credentials: credentials,
		tokenURL:    tokenURL,
		client:      client,
		now:         time.Now,
	}
}

// EnsureValid refreshes the credential when none is held or its expiry is at
// or before the current instant. Refresh failures are terminal for the run,
// they are not retried here.
func (t *TokenManager) EnsureValid(ctx context.Context) error {
	if t.accessToken != "" && t.expires.After(t.now()) {
		return nil
	}
	return t.refresh(ctx)
}

// AccessToken returns the held bearer token; only meaningful after EnsureValid.
func (t *TokenManager) AccessToken() string {
	return t.accessToken
}

// RefreshToken returns the current refresh token. Tokens rotate on every
// refresh exchange, so this value must be persisted going forward.
func (t *TokenManager) RefreshToken() string {
	return t.credentials.RefreshToken
}

func (t *TokenManager) refresh(ctx context.Context) error {
	logger.Info("refreshing access token")

	payload := url.Values{
		"grant_type":    []string{"refresh_token"},
		"redirect_uri":  []string{t.credentials.RedirectURI},
		"refresh_token": []string{t.credentials.RefreshToken},
		"client_id":     []string{t.credentials.ClientID},
		"client_secret": []string{t.credentials.ClientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL, strings.NewReader(payload.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build token request: %s", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("token refresh request failed: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token refresh returned status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("failed to decode token response: %s", err)
	}

	t.accessToken = token.AccessToken
	t.credentials.RefreshToken = token.RefreshToken
	// the margin guarantees refresh happens before the server rejects the token
	t.expires = t.now().Add(time.Duration(token.ExpiresIn)*time.Second - constants.TokenExpiryMargin)

	logger.Infof("access token refreshed, expires at %s", t.expires.UTC().Format(time.RFC3339))
	return nil
}
