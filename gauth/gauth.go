package gauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/people/v1"

	"github.com/perbu/bdaycal/config"
)

// AuthError signals that the authorization flow itself failed (bad or
// expired code, provider rejection). The orchestrator must abort before
// touching any remote data.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authorization failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// storedToken is the credential record persisted to token.json.
type storedToken struct {
	Type         string `json:"type"`
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Scopes returns the OAuth2 scopes the application needs: read-only
// contacts plus full calendar access.
func Scopes() []string {
	return []string{people.ContactsReadonlyScope, calendar.CalendarScope}
}

// ParseClientConfig parses the provider-issued OAuth client descriptor
// (both "installed" and "web" variants are accepted).
func ParseClientConfig(credBytes []byte) (*oauth2.Config, error) {
	conf, err := google.ConfigFromJSON(credBytes, Scopes()...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	return conf, nil
}

// Token returns a usable OAuth2 token. A persisted token is returned as-is
// when present and well-formed; no expiry check is made, refreshing is
// delegated to the HTTP client on first use. Otherwise the interactive
// flow runs and the resulting credential is persisted, replacing any
// prior record.
func Token(ctx context.Context, loader config.Loader, conf *oauth2.Config, flow Flow) (*oauth2.Token, error) {
	if b, err := loader.LoadToken(); err == nil {
		if tok, ok := decodeStoredToken(b); ok {
			return tok, nil
		}
	}

	tok, err := flow.Authorize(ctx, conf)
	if err != nil {
		return nil, &AuthError{Err: err}
	}

	record := storedToken{
		Type:         "authorized_user",
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		RefreshToken: tok.RefreshToken,
	}
	b, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal token: %w", err)
	}
	if err := loader.SaveToken(b); err != nil {
		return nil, fmt.Errorf("unable to save token: %w", err)
	}
	return tok, nil
}

// decodeStoredToken accepts both the normalized authorized_user record and
// a raw oauth2 token dump; both name the fields that matter identically.
func decodeStoredToken(b []byte) (*oauth2.Token, bool) {
	var record storedToken
	if err := json.Unmarshal(b, &record); err != nil {
		return nil, false
	}
	if record.RefreshToken == "" && record.AccessToken == "" {
		return nil, false
	}
	return &oauth2.Token{
		AccessToken:  record.AccessToken,
		RefreshToken: record.RefreshToken,
	}, true
}

// Client builds an HTTP client that injects the credential and refreshes
// it transparently when the provider reports it expired.
func Client(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) *http.Client {
	return conf.Client(ctx, token)
}
