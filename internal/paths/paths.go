package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG config home.
const AppName = "wlog"

// Directory names beneath the install home.
const (
	ConfigsDirName       = "configs"
	FactoryResetsDirName = "factory_resets"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DefaultHome returns the default wlog install home: <ConfigHome>/wlog.
func DefaultHome() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigsDir returns the live config directory for an install home.
func ConfigsDir(home string) string {
	if home == "" {
		return ""
	}
	return filepath.Join(home, ConfigsDirName)
}

// FactoryResetsDir returns the factory defaults directory for an install home.
func FactoryResetsDir(home string) string {
	if home == "" {
		return ""
	}
	return filepath.Join(home, ConfigsDirName, FactoryResetsDirName)
}
