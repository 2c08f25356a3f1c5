package config

import (
	"path/filepath"
	"strings"

	"github.com/thoreinstein/wlog/internal/errors"
)

// Validation errors for settings fields.
var (
	// ErrMissingHome indicates no install home could be resolved.
	ErrMissingHome = errors.NewValidation("home directory is required")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.NewValidation("invalid path")
)

// Validate checks Settings for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(s *Settings) []error {
	if s == nil {
		return []error{errors.New("settings are nil")}
	}

	var errs []error

	if s.Home == "" {
		errs = append(errs, ErrMissingHome)
	} else if err := validatePath(s.Home); err != nil {
		errs = append(errs, &PathError{Field: KeyHome, Path: s.Home, Err: err})
	}

	// Empty means no user directory
	if s.ConfigDir != "" {
		if err := validatePath(s.ConfigDir); err != nil {
			errs = append(errs, &PathError{Field: KeyConfigDir, Path: s.ConfigDir, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
