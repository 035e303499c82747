package secrets

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// keyringUser names the account slot of the keyring entry.
const keyringUser = "token"

// Keyring resolves the token from the OS secret store.
type Keyring struct {
	service string
	user    string
}

// NewKeyring creates a Keyring source for the Readwise host.
func NewKeyring() *Keyring {
	return &Keyring{service: Host, user: keyringUser}
}

// Token looks up the secret for the Readwise host in the OS keyring.
func (k *Keyring) Token() (string, error) {
	secret, err := keyring.Get(k.service, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoCredential
	}
	if err != nil {
		return "", fmt.Errorf("querying keyring: %w", err)
	}
	if secret == "" {
		return "", ErrNoCredential
	}
	return secret, nil
}
