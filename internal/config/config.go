// Package config provides settings management for wlog using Viper.
package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/thoreinstein/wlog/internal/errors"
	"github.com/thoreinstein/wlog/internal/paths"
)

// EnvPrefix is the prefix for environment variable overrides (WLOG_HOME, ...).
const EnvPrefix = "WLOG"

// Setting keys.
const (
	KeyHome      = "home"
	KeyConfigDir = "config_dir"
)

// Settings holds the values the CLI resolves once per invocation and passes
// down to the aggregator and the factory reset manager.
type Settings struct {
	// Home is the install home directory.
	Home string `mapstructure:"home" yaml:"home"`

	// ConfigDir is an optional user config directory merged after the
	// live configs, overriding them per file stem.
	ConfigDir string `mapstructure:"config_dir" yaml:"config_dir"`
}

// ConfigsDir returns the live config directory: <home>/configs.
func (s *Settings) ConfigsDir() string {
	return paths.ConfigsDir(s.Home)
}

// FactoryResetsDir returns the factory defaults directory:
// <home>/configs/factory_resets.
func (s *Settings) FactoryResetsDir() string {
	return paths.FactoryResetsDir(s.Home)
}

// Init initializes Viper with default settings.
// Call this once at application startup before accessing settings.
func Init() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault(KeyHome, paths.DefaultHome())
	viper.SetDefault(KeyConfigDir, "")
}

// Load resolves the current settings from flags, environment, and defaults.
// A leading "~" is expanded and paths are cleaned before validation.
func Load() (*Settings, error) {
	var s Settings
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		expandPathHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(&s, hook); err != nil {
		return nil, errors.Wrap(err, "unmarshaling settings")
	}

	if errs := Validate(&s); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validating settings")
	}

	return &s, nil
}

// expandPathHook runs expand on every string decoded into a string field.
// Every Settings field is a path.
func expandPathHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.String {
			return data, nil
		}
		return expand(data.(string))
	}
}

// expand replaces a leading "~" with the user's home directory and cleans
// the result. Empty paths stay empty.
func expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := paths.ResolveHome()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path), nil
}
