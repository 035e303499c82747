package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"readwise2org/internal/config"
)

func TestForBackend(t *testing.T) {
	tests := []struct {
		name        string
		backend     string
		expectError bool
	}{
		{
			name:    "Keyring backend",
			backend: config.BackendKeyring,
		},
		{
			name:    "Password store backend",
			backend: config.BackendPasswordStore,
		},
		{
			name:        "Unknown backend",
			backend:     "vault",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := ForBackend(tt.backend)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if src == nil {
				t.Error("Expected token source, got nil")
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Single line with newline",
			input:    "s3cret\n",
			expected: "s3cret",
		},
		{
			name:     "Multi line keeps first",
			input:    "s3cret\nlogin: me\n",
			expected: "s3cret",
		},
		{
			name:     "Trailing whitespace trimmed",
			input:    "  s3cret  \n",
			expected: "s3cret",
		},
		{
			name:     "Empty output",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstLine(tt.input); got != tt.expected {
				t.Errorf("firstLine(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// stubPass writes a shell script that behaves like pass(1) for the
// readwise.io entry and fails for everything else.
func stubPass(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("pass backend is not available on windows")
	}

	script := "#!/bin/sh\n" +
		"if [ \"$1\" != \"show\" ] || [ \"$2\" != \"readwise.io\" ]; then exit 1; fi\n" +
		"printf 's3cret\\nlogin: me\\n'\n"

	path := filepath.Join(t.TempDir(), "pass")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write stub: %v", err)
	}
	return path
}

func TestPasswordStoreToken(t *testing.T) {
	ps := &PasswordStore{command: stubPass(t), entry: Host}

	token, err := ps.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "s3cret" {
		t.Errorf("Token() = %q, want %q", token, "s3cret")
	}
}

func TestPasswordStoreTokenMissingEntry(t *testing.T) {
	ps := &PasswordStore{command: stubPass(t), entry: "other.example"}

	_, err := ps.Token()
	if !errors.Is(err, ErrNoCredential) {
		t.Errorf("Token() error = %v, want ErrNoCredential", err)
	}
}
