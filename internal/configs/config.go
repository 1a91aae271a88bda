package configs

import (
	"fmt"
	"os"
	"strconv"
)

const (
	DefaultPasswordEnv       = "ENVC_PASSWORD"
	DefaultConcurrency       = 4
	DefaultFileModePlain     = "0644"
	DefaultFileModeEncrypted = "0600"
)

// Config is the user configuration stored in config.toml.
type Config struct {
	PasswordEnv       string      `toml:"password_env" json:"password_env"`
	Concurrency       int         `toml:"concurrency" json:"concurrency"`
	OfferGitignore    bool        `toml:"offer_gitignore" json:"offer_gitignore"`
	FileModePlain     string      `toml:"file_mode_plain" json:"file_mode_plain"`
	FileModeEncrypted string      `toml:"file_mode_encrypted" json:"file_mode_encrypted"`
	Audit             AuditConfig `toml:"audit" json:"audit"`
}

type AuditConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Path    string `toml:"path,omitempty" json:"path,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		PasswordEnv:       DefaultPasswordEnv,
		Concurrency:       DefaultConcurrency,
		OfferGitignore:    true,
		FileModePlain:     DefaultFileModePlain,
		FileModeEncrypted: DefaultFileModeEncrypted,
		Audit: AuditConfig{
			Enabled: true,
		},
	}
}

// LoadConfig reads the config at path over the defaults. A missing file is
// not an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig writes config to path.
func SaveConfig(path string, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Validate checks value ranges that TOML decoding cannot express.
func (c *Config) Validate() error {
	if c.PasswordEnv == "" {
		return fmt.Errorf("password_env cannot be empty")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if _, err := parseFileMode(c.FileModePlain); err != nil {
		return fmt.Errorf("file_mode_plain: %w", err)
	}
	if _, err := parseFileMode(c.FileModeEncrypted); err != nil {
		return fmt.Errorf("file_mode_encrypted: %w", err)
	}
	return nil
}

// PlainMode is the permission for files written by decrypt.
func (c *Config) PlainMode() os.FileMode {
	mode, err := parseFileMode(c.FileModePlain)
	if err != nil {
		return 0644
	}
	return mode
}

// EncryptedMode is the permission for files written by encrypt.
func (c *Config) EncryptedMode() os.FileMode {
	mode, err := parseFileMode(c.FileModeEncrypted)
	if err != nil {
		return 0600
	}
	return mode
}

// AuditPath returns the configured audit log path, or fallback when unset.
func (c *Config) AuditPath(fallback string) string {
	if c.Audit.Path != "" {
		return c.Audit.Path
	}
	return fallback
}

func parseFileMode(s string) (os.FileMode, error) {
	mode, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid octal file mode %q", s)
	}
	if mode > 0777 {
		return 0, fmt.Errorf("file mode %q has bits outside 0777", s)
	}
	return os.FileMode(mode), nil
}
