package hubapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/streamzip/tap-hubspot/constants"
	"github.com/streamzip/tap-hubspot/pkg/auth"
	"github.com/streamzip/tap-hubspot/utils"
	"github.com/streamzip/tap-hubspot/utils/logger"
)

// ErrAuthFailed marks a failed refresh exchange; no request can succeed
// without a valid credential, so the run stops here.
var ErrAuthFailed = errors.New("authentication failed")

// RequestError is a non-2xx API response. Client errors (4xx) are fatal by
// policy: they indicate a configuration or API contract problem retrying
// cannot fix, and silent partial failure is worse than a loud stop.
type RequestError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("GET %s [%d - %s]", e.URL, e.StatusCode, e.Body)
}

// Fatal reports whether the error must abort the run without retrying.
func (e *RequestError) Fatal() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsFatal reports whether err is a non-retryable client error or an
// authentication failure.
func IsFatal(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Fatal()
	}
	return errors.Is(err, ErrAuthFailed)
}

// Client issues authenticated GET requests against the API. The underlying
// http.Client is reused across all requests for connection pooling; callers
// are strictly sequential.
type Client struct {
	BaseURL string

	http      *http.Client
	auth      *auth.TokenManager
	userAgent string
	retry     utils.RetryPolicy
}

func NewClient(httpClient *http.Client, tokenManager *auth.TokenManager, userAgent string) *Client {
	return &Client{
		BaseURL:   BaseURL,
		http:      httpClient,
		auth:      tokenManager,
		userAgent: userAgent,
		retry: utils.RetryPolicy{
			MaxAttempts: constants.DefaultRetryCount,
			Factor:      constants.DefaultBackoffFactor,
			Retryable:   func(err error) bool { return !IsFatal(err) },
		},
	}
}

// URL builds the absolute URL for an endpoint against this client's base.
func (c *Client) URL(endpoint Endpoint, args ...any) string {
	return endpoint.URL(c.BaseURL, args...)
}

// Get issues an authenticated GET and returns the decoded JSON body.
// Transient failures (network, 5xx) are retried with exponential backoff;
// 4xx responses and auth failures abort immediately.
func (c *Client) Get(ctx context.Context, requestURL string, params url.Values) (any, error) {
	var decoded any
	err := c.retry.Do(ctx, func() error {
		return c.getOnce(ctx, requestURL, params, &decoded)
	})
	return decoded, err
}

func (c *Client) getOnce(ctx context.Context, requestURL string, params url.Values, decoded *any) error {
	if err := c.auth.EnsureValid(ctx); err != nil {
		return fmt.Errorf("%w: %s", ErrAuthFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %s", err)
	}
	if len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}
	req.Header.Set("Authorization", "Bearer "+c.auth.AccessToken())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logger.Debugf("GET %s", req.URL.String())
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		reqErr := &RequestError{URL: req.URL.String(), StatusCode: resp.StatusCode, Body: string(body)}
		if reqErr.Fatal() {
			logger.Errorf("%s", reqErr)
		}
		return reqErr
	}

	if err := json.NewDecoder(resp.Body).Decode(decoded); err != nil {
		return fmt.Errorf("failed to decode response from %s: %s", req.URL.String(), err)
	}
	return nil
}
