package secrets

import (
	"fmt"
	"os/exec"
	"strings"
)

// PasswordStore resolves the token through the pass(1) command line.
// pass keeps the secret on the first line of the entry.
type PasswordStore struct {
	command string
	entry   string
}

// NewPasswordStore creates a PasswordStore source for the Readwise host.
func NewPasswordStore() *PasswordStore {
	return &PasswordStore{command: "pass", entry: Host}
}

// Token runs `pass show readwise.io` and returns the first line of output.
func (p *PasswordStore) Token() (string, error) {
	out, err := exec.Command(p.command, "show", p.entry).Output()
	if err != nil {
		// pass exits non-zero when the entry does not exist
		return "", fmt.Errorf("%w: %v", ErrNoCredential, err)
	}

	token := firstLine(string(out))
	if token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
