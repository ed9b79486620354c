// Package credman resolves the Claude OAuth access token used to query the
// usage API. Tokens are looked up from the environment, the OS secret
// store, and the Claude Code credentials file, in that order. The package
// never writes credentials; the store belongs to the Claude Code CLI.
package credman

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/glidetop/glidetop/pkg/logger"
)

// TokenEnv is the environment variable holding a raw OAuth access token.
// When set it bypasses the secret store entirely.
const TokenEnv = "GLIDETOP_TOKEN"

var osGetenv = os.Getenv

// Provider supplies an OAuth access token for the usage API.
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// AuthError reports that a credential source could not produce a usable
// token. It is never fatal to the dashboard; the error is surfaced on the
// next render.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
	}
	return "auth: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// oauthCredentials mirrors the credential blob the Claude Code CLI writes
// to the OS secret store and to ~/.claude/.credentials.json.
type oauthCredentials struct {
	ClaudeAiOauth oauthToken `json:"claudeAiOauth"`
}

type oauthToken struct {
	AccessToken      string   `json:"accessToken"`
	RefreshToken     string   `json:"refreshToken"`
	ExpiresAt        int64    `json:"expiresAt"`
	Scopes           []string `json:"scopes"`
	SubscriptionType string   `json:"subscriptionType"`
}

// parseCredentials extracts the access token from a credential blob.
// ExpiresAt is epoch milliseconds; a token past it is rejected here rather
// than letting the API answer 401 on every poll.
func parseCredentials(data []byte, now time.Time) (string, error) {
	var creds oauthCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", &AuthError{Reason: "credentials are not valid JSON", Err: err}
	}
	tok := creds.ClaudeAiOauth
	if tok.AccessToken == "" {
		return "", &AuthError{Reason: "no accessToken in credentials"}
	}
	if tok.ExpiresAt > 0 && !now.Before(time.UnixMilli(tok.ExpiresAt)) {
		return "", &AuthError{Reason: "access token expired, run `claude` to refresh"}
	}
	return tok.AccessToken, nil
}

// EnvSource reads a raw token from an environment variable.
type EnvSource struct {
	Key string
}

// NewEnvSource creates a source reading TokenEnv.
func NewEnvSource() *EnvSource {
	return &EnvSource{Key: TokenEnv}
}

// Token returns the raw token from the environment.
func (s *EnvSource) Token(ctx context.Context) (string, error) {
	if v := osGetenv(s.Key); v != "" {
		return v, nil
	}
	return "", &AuthError{Reason: s.Key + " is not set"}
}

// Chain tries each source in order and returns the first token found.
type Chain struct {
	sources []Provider
	log     logger.Logger
}

// NewChain builds a chain over the given sources. A nil log disables
// logging.
func NewChain(log logger.Logger, sources ...Provider) *Chain {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Chain{sources: sources, log: log}
}

// Token walks the sources in order. When every source fails the errors are
// joined so the caller can still identify the individual causes.
func (c *Chain) Token(ctx context.Context) (string, error) {
	var errs []error
	for _, s := range c.sources {
		tok, err := s.Token(ctx)
		if err == nil {
			return tok, nil
		}
		c.log.Warning("credential source unavailable: %v", err)
		errs = append(errs, err)
	}
	return "", &AuthError{
		Reason: "no credential source produced a token",
		Err:    errors.Join(errs...),
	}
}

var _ Provider = (*EnvSource)(nil)
var _ Provider = (*Chain)(nil)
