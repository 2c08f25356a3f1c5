package errors

import (
	stderrors "errors"
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (missing directory, bad YAML, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, disk space).
	ExitSystem = 2
)

// Sentinel errors.
var (
	// ErrWlog is the root of every wlog domain error.
	ErrWlog = New("wlog error")

	// ErrValidation indicates a sanity check returned an unexpected value.
	ErrValidation error = &validationError{msg: "validation failed"}

	// ErrNotFound indicates the requested item was not found.
	ErrNotFound = New("not found")
)

// Re-exported helpers so callers only import this package.
var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
	Is    = stderrors.Is
	As    = stderrors.As
)

// Join returns an error wrapping every non-nil error in errs.
// It returns nil if errs contains no non-nil values.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool {
	return target == ErrValidation || target == ErrWlog
}

// NewValidation returns an error with the given message that matches
// ErrValidation and ErrWlog.
func NewValidation(msg string) error {
	return &validationError{msg: msg}
}

// ConfigDirectoryNotFoundError is returned when a directory to scan is
// missing or is not a directory.
type ConfigDirectoryNotFoundError struct {
	Dir string
	Err error
}

func (e *ConfigDirectoryNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config directory not found: %s: %v", e.Dir, e.Err)
	}
	return "config directory not found: " + e.Dir
}

func (e *ConfigDirectoryNotFoundError) Unwrap() error { return e.Err }

// Is reports ErrWlog and ErrNotFound as matches.
func (e *ConfigDirectoryNotFoundError) Is(target error) bool {
	return target == ErrWlog || target == ErrNotFound
}

// ConfigParseError is returned when a config file cannot be read or is not
// a valid YAML mapping.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error { return e.Err }

// Is reports ErrWlog as a match.
func (e *ConfigParseError) Is(target error) bool {
	return target == ErrWlog
}

// MissingDefaultFileError is returned when a factory default file does not exist.
type MissingDefaultFileError struct {
	Path string
}

func (e *MissingDefaultFileError) Error() string {
	return "factory default not found: " + e.Path
}

// Is reports ErrWlog and ErrNotFound as matches.
func (e *MissingDefaultFileError) Is(target error) bool {
	return target == ErrWlog || target == ErrNotFound
}

// FilesystemError wraps an OS-level failure with the operation and paths
// involved. Dst is empty for single-path operations.
type FilesystemError struct {
	Op  string
	Src string
	Dst string
	Err error
}

func (e *FilesystemError) Error() string {
	if e.Dst == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Src, e.Err)
	}
	return fmt.Sprintf("%s %s -> %s: %v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// Is reports ErrWlog as a match.
func (e *FilesystemError) Is(target error) bool {
	return target == ErrWlog
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// FromError classifies err into an ExitError. An ExitError already in the
// chain is returned as is; domain errors get a code and suggestion by kind.
// Returns nil for a nil error.
func FromError(err error) *ExitError {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr
	}

	var (
		dirErr     *ConfigDirectoryNotFoundError
		parseErr   *ConfigParseError
		missingErr *MissingDefaultFileError
		fsErr      *FilesystemError
	)
	switch {
	case stderrors.As(err, &dirErr):
		return NewUserError(err, "Check that the directory exists: "+dirErr.Dir)
	case stderrors.As(err, &parseErr):
		return NewUserError(err, "Fix the YAML in "+parseErr.Path+" or run: wlog configs restore")
	case stderrors.As(err, &missingErr):
		return NewUserError(err, "Run: wlog configs restore --list-defaults")
	case stderrors.As(err, &fsErr):
		return NewSystemError(err, "Check permissions and free space")
	default:
		return NewExitError(err, ExitUser)
	}
}

// Suggest returns the actionable hint for err, or "" when there is none.
func Suggest(err error) string {
	if err == nil {
		return ""
	}
	return FromError(err).Suggestion
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return FromError(err).Code
}
