package configs

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "envc"

// Settings holds the per-user locations envc reads and writes.
type Settings struct {
	ConfigPath string
	AuditPath  string
}

// EnvcSettings is initialized from the XDG base directories at startup.
// The root command overrides ConfigPath when --config is given.
var EnvcSettings *Settings

func init() {
	EnvcSettings = DefaultSettings()
}

// DefaultSettings resolves paths from the XDG base directories:
// $XDG_CONFIG_HOME/envc/config.toml and $XDG_STATE_HOME/envc/audit.jsonl.
func DefaultSettings() *Settings {
	return &Settings{
		ConfigPath: filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		AuditPath:  filepath.Join(xdg.StateHome, appName, "audit.jsonl"),
	}
}
