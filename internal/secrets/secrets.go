// Package secrets resolves the Readwise API bearer token from the
// configured secret backend. The token is resolved fresh at the start of
// every sync and reused for all pages of that sync.
package secrets

import (
	"errors"
	"fmt"

	"readwise2org/internal/config"
)

// Host is the secret-store lookup key for the Readwise API.
const Host = "readwise.io"

// ErrNoCredential is returned when no secret record matches Host in the
// configured backend. No HTTP request is issued in that case.
var ErrNoCredential = errors.New("no credential found for " + Host)

// TokenSource resolves the API bearer token.
type TokenSource interface {
	Token() (string, error)
}

// ForBackend returns the token source for the configured auth backend.
func ForBackend(backend string) (TokenSource, error) {
	switch backend {
	case config.BackendKeyring:
		return NewKeyring(), nil
	case config.BackendPasswordStore:
		return NewPasswordStore(), nil
	default:
		return nil, fmt.Errorf("unknown auth backend %q", backend)
	}
}
