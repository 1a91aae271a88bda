// Package configs manages the envc user configuration.
//
// Configuration is a single TOML file at $XDG_CONFIG_HOME/envc/config.toml
// (see Settings). Every key is optional; keys missing from the file keep
// their defaults:
//
//	password_env        = "ENVC_PASSWORD"  # variable checked before prompting
//	concurrency         = 4                # files processed in parallel
//	offer_gitignore     = true             # offer .gitignore entries after encrypt
//	file_mode_plain     = "0644"           # mode of files written by decrypt
//	file_mode_encrypted = "0600"           # mode of files written by encrypt
//
//	[audit]
//	enabled = true
//	path    = ""                           # default $XDG_STATE_HOME/envc/audit.jsonl
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
package configs
