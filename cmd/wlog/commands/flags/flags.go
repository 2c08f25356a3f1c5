// Package flags provides shared state for CLI commands.
// This package exists to avoid import cycles between the root command
// and noun subpackages such as configs.
package flags

import "github.com/thoreinstein/wlog/internal/config"

// settings holds what the root command resolved before running a subcommand.
var settings *config.Settings

// GetSettings returns the settings resolved by the root command. When the
// root command did not run, as when a subcommand is executed on its own,
// settings are loaded from the environment and defaults.
func GetSettings() (*config.Settings, error) {
	if settings != nil {
		return settings, nil
	}
	return config.Load()
}

// SetSettings sets the settings seen by subcommands.
// Passing nil makes GetSettings load them again.
func SetSettings(s *config.Settings) {
	settings = s
}
