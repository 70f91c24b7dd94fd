// Package session persists the session token in the config directory.
//
// The token file uses the oauth2.Token JSON shape so the stored credential
// plugs straight into an oauth2 token source for the authenticated HTTP
// client.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"taskdeck/internal/config"
)

// ErrNotLoggedIn is returned by Load when no token file exists.
var ErrNotLoggedIn = errors.New("not logged in")

// Session holds the current auth token.
type Session struct {
	Token string
}

// Exists checks if a token file is present.
func Exists(cfg *config.Config) bool {
	_, err := os.Stat(cfg.TokenPath())
	return err == nil
}

// Load reads the stored session token.
// Returns ErrNotLoggedIn if the token file does not exist.
func Load(cfg *config.Config) (*Session, error) {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token file: %w", err)
	}
	if token.AccessToken == "" {
		return nil, ErrNotLoggedIn
	}
	return &Session{Token: token.AccessToken}, nil
}

// Save writes the session token with mode 0600, creating the config
// directory if needed. An existing token is overwritten; exactly one token
// is held at a time.
func Save(cfg *config.Config, token string) error {
	if err := cfg.EnsureDir(); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.TokenPath(), data, 0600)
}

// Clear removes the stored token. Clearing an absent token is not an error.
func Clear(cfg *config.Config) error {
	err := os.Remove(cfg.TokenPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
