// Package yandex talks to the Yandex OAuth provider: authorization-code
// exchange and user-info lookup.
package yandex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"audio-vault-api/config"
)

var (
	// provider reachable but it refused the credentials/code/token
	ErrProviderDenied = errors.New("yandex rejected the request")
	// network-level failure or timeout
	ErrProviderUnavailable = errors.New("yandex service unavailable")
	// profile payload lacks the fields reconciliation needs
	ErrIncompleteProfile = errors.New("incomplete yandex user data")
)

const requestTimeout = 10 * time.Second

// Profile is the subset of the user-info payload the service consumes.
type Profile struct {
	ID           string `json:"id"`
	Login        string `json:"login"`
	DefaultEmail string `json:"default_email"`
	RealName     string `json:"real_name"`
	DisplayName  string `json:"display_name"`
}

// Name picks the best available display name, falling back to the mailbox
// part of the email.
func (p Profile) Name() string {
	if p.RealName != "" {
		return p.RealName
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if at := strings.Index(p.DefaultEmail, "@"); at > 0 {
		return p.DefaultEmail[:at]
	}
	return p.Login
}

type Client struct {
	logger *zap.Logger
	cfg    config.Yandex
	oauth  *oauth2.Config
	http   *http.Client
}

func New(logger *zap.Logger, cfg config.Yandex) *Client {
	return &Client{
		logger: logger,
		cfg:    cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		http: &http.Client{Timeout: requestTimeout},
	}
}

// AuthCodeURL builds the provider authorization page URL for the login
// redirect.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for a provider access token.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) {
			c.logger.Warn("yandex token exchange rejected",
				zap.Int("status", rErr.Response.StatusCode),
				zap.String("error_code", rErr.ErrorCode),
			)
			return nil, fmt.Errorf("code exchange failed: %w", ErrProviderDenied)
		}
		return nil, fmt.Errorf("code exchange failed: %w", ErrProviderUnavailable)
	}

	return tok, nil
}

// UserInfo fetches the provider profile for an access token and validates the
// fields reconciliation depends on.
func (c *Client) UserInfo(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.UserInfoURL+"?format=json", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "OAuth "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("yandex userinfo rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("userinfo status %d: %w", resp.StatusCode, ErrProviderDenied)
	}

	var p Profile
	if err = json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("userinfo decode: %w", ErrIncompleteProfile)
	}
	if p.ID == "" || p.DefaultEmail == "" {
		return nil, ErrIncompleteProfile
	}

	return &p, nil
}
