package credman

import (
	"context"
	"os/user"
	"time"

	"github.com/zalando/go-keyring"
)

// KeyringService is the secret-store entry the Claude Code CLI writes its
// credentials under.
const KeyringService = "Claude Code-credentials"

var (
	keyringGet  = keyring.Get
	currentUser = user.Current
)

// KeyringSource reads the credential blob from the OS secret store
// (Keychain on macOS, Secret Service on Linux, Credential Manager on
// Windows).
type KeyringSource struct {
	Service string
	// Account overrides the secret-store account; the current OS user
	// when empty.
	Account string

	now func() time.Time
}

// NewKeyringSource creates a source reading KeyringService for the
// current OS user.
func NewKeyringSource() *KeyringSource {
	return &KeyringSource{
		Service: KeyringService,
		now:     time.Now,
	}
}

// Token fetches and parses the credential blob from the secret store.
func (s *KeyringSource) Token(ctx context.Context) (string, error) {
	account := s.Account
	if account == "" {
		u, err := currentUser()
		if err != nil {
			return "", &AuthError{Reason: "cannot resolve current user", Err: err}
		}
		account = u.Username
	}
	blob, err := keyringGet(s.Service, account)
	if err != nil {
		return "", &AuthError{Reason: "secret store has no " + s.Service + " entry", Err: err}
	}
	nowFn := s.now
	if nowFn == nil {
		nowFn = time.Now
	}
	return parseCredentials([]byte(blob), nowFn())
}

var _ Provider = (*KeyringSource)(nil)
