package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Auth backend selectors.
const (
	BackendKeyring       = "keyring"
	BackendPasswordStore = "pass"
)

// DefaultExportURL is the Readwise highlight export endpoint.
const DefaultExportURL = "https://readwise.io/api/v2/export/"

// Config represents the main configuration for readwise2org.
type Config struct {
	// OutputDir is the root directory the outline files are written under.
	OutputDir string `toml:"output_dir"`

	// Debug enables debug-level logging.
	Debug bool `toml:"debug"`

	// AuthBackend selects where the API token is looked up: "keyring" or "pass".
	AuthBackend string `toml:"auth_backend"`

	// ExportURL overrides the Readwise export endpoint, mainly for testing.
	ExportURL string `toml:"export_url"`

	// ReindexCommand is run after a fully successful sync to refresh the
	// editor's knowledge-base index. Empty means no reindex is triggered.
	ReindexCommand []string `toml:"reindex_command"`

	Notion NotionConfig `toml:"notion"`
}

// NotionConfig controls the optional Notion mirror of synced documents.
// The API key is taken from the NOTION_API_KEY environment variable.
type NotionConfig struct {
	Enabled      bool   `toml:"enabled"`
	ParentPageID string `toml:"parent_page_id"`
}

// New creates a Config with default values.
func New() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		OutputDir:   filepath.Join(home, "org", "readwise"),
		AuthBackend: BackendKeyring,
		ExportURL:   DefaultExportURL,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "readwise2org", "config.toml"), nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader. Environment variable
// references in string values are expanded before decoding.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := New()
	if _, err := toml.Decode(os.ExpandEnv(string(data)), cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.AuthBackend {
	case BackendKeyring, BackendPasswordStore:
	default:
		return fmt.Errorf("unknown auth_backend %q (expected %q or %q)",
			c.AuthBackend, BackendKeyring, BackendPasswordStore)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.Notion.Enabled && c.Notion.ParentPageID == "" {
		return fmt.Errorf("notion.parent_page_id is required when the notion mirror is enabled")
	}
	return nil
}
