package validator

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/wlog/internal/errors"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError means wlog cannot load the configuration as is.
	SeverityError Severity = iota
	// SeverityWarning means the configuration loads but probably not as intended.
	SeverityWarning
	// SeverityInfo is an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return errors.Newf("unknown severity %q", b)
	}
	return nil
}

// Issue is a single problem found in a config directory.
type Issue struct {
	Severity Severity `json:"severity"`

	// File is the config file or directory the issue is about.
	File string `json:"file"`

	// Key is the top-level config key involved, if any.
	Key string `json:"key,omitempty"`

	Message string `json:"message"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	sb.WriteString(i.File)
	if i.Key != "" {
		fmt.Fprintf(&sb, " [%s]", i.Key)
	}
	sb.WriteString(": ")
	sb.WriteString(i.Message)
	return sb.String()
}

// Result aggregates validation issues.
type Result struct {
	// Files is the number of config files examined.
	Files  int     `json:"files"`
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	return len(r.bySeverity(SeverityError)) > 0
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Result) HasWarnings() bool {
	return len(r.bySeverity(SeverityWarning)) > 0
}

func (r *Result) add(sev Severity, file, key, message string) {
	r.Issues = append(r.Issues, Issue{
		Severity: sev,
		File:     file,
		Key:      key,
		Message:  message,
	})
}

// AddError adds an error issue to the result.
func (r *Result) AddError(file, key, message string) { r.add(SeverityError, file, key, message) }

// AddWarning adds a warning issue to the result.
func (r *Result) AddWarning(file, key, message string) { r.add(SeverityWarning, file, key, message) }

// AddInfo adds an info issue to the result.
func (r *Result) AddInfo(file, key, message string) { r.add(SeverityInfo, file, key, message) }

// Errors returns the issues with SeverityError.
func (r *Result) Errors() []Issue { return r.bySeverity(SeverityError) }

// Warnings returns the issues with SeverityWarning.
func (r *Result) Warnings() []Issue { return r.bySeverity(SeverityWarning) }

// Infos returns the issues with SeverityInfo.
func (r *Result) Infos() []Issue { return r.bySeverity(SeverityInfo) }

func (r *Result) bySeverity(sev Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			res = append(res, i)
		}
	}
	return res
}

// Err returns an error summarizing the error-severity issues, or nil when
// there are none. Warnings never produce an error.
func (r *Result) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	return errors.NewValidation(fmt.Sprintf("%d config problem(s) found", len(errs)))
}
