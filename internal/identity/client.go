// Package identity wraps the external users service that handles Google
// OAuth. The API issues opaque session tokens; this package exchanges
// authorization codes for tokens and resolves tokens back to users.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"inkwell/internal/cache"
)

// SessionCookieName is the cookie under which the session token is stored.
const SessionCookieName = "inkwell_session"

// SessionCookieMaxAge is how long session cookies live. Matches the token
// lifetime on the identity service side.
const SessionCookieMaxAge = 60 * 24 * time.Hour

// User is the identity of an authenticated caller as reported by the
// users service.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Client talks to the identity service over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient returns a Client for the identity service at baseURL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnauthorized {
		return ErrSessionInvalid
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("identity service returned %d for %s %s", resp.StatusCode, method, path)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// ErrSessionInvalid indicates the session token is unknown or expired.
var ErrSessionInvalid = fmt.Errorf("identity: session invalid")

// GetOAuthRedirectURL asks the identity service for the Google consent URL.
func (c *Client) GetOAuthRedirectURL(ctx context.Context, provider string) (string, error) {
	var out struct {
		RedirectURL string `json:"redirect_url"`
	}
	path := fmt.Sprintf("/v1/oauth/%s/redirect_url", url.PathEscape(provider))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return "", err
	}
	return out.RedirectURL, nil
}

// ExchangeCodeForSessionToken trades an OAuth authorization code for a
// session token.
func (c *Client) ExchangeCodeForSessionToken(ctx context.Context, code string) (string, error) {
	var out struct {
		SessionToken string `json:"session_token"`
	}
	in := map[string]string{"code": code}
	if err := c.do(ctx, http.MethodPost, "/v1/sessions", in, &out); err != nil {
		return "", err
	}
	return out.SessionToken, nil
}

// GetSessionUser resolves a session token to its user. Results are cached
// briefly in Redis so every request does not round-trip to the service.
func (c *Client) GetSessionUser(ctx context.Context, token string) (*User, error) {
	var user User
	err := cache.Aside(ctx, cache.IdentityKey(token), &user, cache.IdentityTTL, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/sessions/me", nil)
		if err != nil {
			return err
		}
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnauthorized {
			return ErrSessionInvalid
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("identity service returned %d resolving session", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteSession revokes a session token and drops its cache entry.
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	cache.Invalidate(ctx, cache.IdentityKey(token))
	path := "/v1/sessions/" + url.PathEscape(token)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
