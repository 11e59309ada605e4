// Package github implements the OAuth code exchange against GitHub: the
// authorization code is traded for an access token, then the token for
// the account's profile. Two outbound calls, no retries — authorization
// codes are single-use, so a retry could never succeed.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/oksasatya/address-book/pkg/apperr"
)

const (
	defaultAuthorizeURL = "https://github.com/login/oauth/authorize"
	defaultTokenURL     = "https://github.com/login/oauth/access_token"
	defaultUserURL      = "https://api.github.com/user"
)

// Config carries the OAuth app credentials. The endpoint URLs default to
// GitHub's and are overridable for tests.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	AuthorizeURL string
	TokenURL     string
	UserURL      string
}

// Profile is the slice of the GitHub account we keep: the stable numeric
// id and the login name.
type Profile struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.AuthorizeURL == "" {
		cfg.AuthorizeURL = defaultAuthorizeURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.UserURL == "" {
		cfg.UserURL = defaultUserURL
	}
	return &Client{
		cfg: cfg,
		// Bounded so a wedged provider cannot pin request tasks forever.
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthorizeURL returns the URL the browser is redirected to for consent.
func (c *Client) AuthorizeURL() string {
	params := url.Values{
		"client_id":    {c.cfg.ClientID},
		"redirect_uri": {c.cfg.RedirectURI},
	}
	return c.cfg.AuthorizeURL + "?" + params.Encode()
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Exchange trades an authorization code for the account profile.
func (c *Client) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := c.exchangeToken(ctx, code)
	if err != nil {
		return nil, err
	}
	return c.fetchProfile(ctx, token)
}

func (c *Client) exchangeToken(ctx context.Context, code string) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"code":          code,
		"client_id":     c.cfg.ClientID,
		"client_secret": c.cfg.ClientSecret,
		"redirect_uri":  c.cfg.RedirectURI,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, bytes.NewReader(body))
	if err != nil {
		return "", apperr.UpstreamUnavailable(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperr.UpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.UpstreamUnavailable(err)
	}

	var tr tokenResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		return "", apperr.OAuthExchange("unparseable token response")
	}
	// GitHub reports code problems in-band with a 200.
	if tr.Error != "" {
		return "", apperr.OAuthExchange(tr.Error)
	}
	if tr.AccessToken == "" {
		return "", apperr.OAuthExchange("no access token in response")
	}
	return tr.AccessToken, nil
}

func (c *Client) fetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.UserURL, nil)
	if err != nil {
		return nil, apperr.UpstreamUnavailable(err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.UpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.OAuthExchange("profile fetch returned " + resp.Status)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, apperr.OAuthExchange("unparseable profile response")
	}
	if p.ID == 0 || p.Login == "" {
		return nil, apperr.OAuthExchange("incomplete profile response")
	}
	return &p, nil
}
