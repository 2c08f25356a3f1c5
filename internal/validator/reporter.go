package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/thoreinstein/wlog/internal/errors"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	default:
		return r.reportText(result)
	}
}

func (r *Reporter) reportJSON(result *Result) error {
	out := *result
	if out.Issues == nil {
		out.Issues = []Issue{}
	}
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(out), "encoding JSON report")
}

func (r *Reporter) reportText(result *Result) error {
	sections := []struct {
		title  string
		issues []Issue
		color  color.Attribute
	}{
		{"Errors", result.Errors(), color.FgRed},
		{"Warnings", result.Warnings(), color.FgYellow},
		{"Notes", result.Infos(), color.FgCyan},
	}

	for _, s := range sections {
		if len(s.issues) == 0 {
			continue
		}
		fmt.Fprintf(r.out, "%s:\n", s.title)
		for _, i := range s.issues {
			r.printIssue(i, s.color)
		}
		fmt.Fprintln(r.out)
	}

	nErr, nWarn := len(result.Errors()), len(result.Warnings())
	switch {
	case nErr > 0:
		fmt.Fprintln(r.out, color.RedString("%d file(s) checked: %d error(s), %d warning(s)", result.Files, nErr, nWarn))
	case nWarn > 0:
		fmt.Fprintln(r.out, color.YellowString("%d file(s) checked: %d warning(s)", result.Files, nWarn))
	default:
		fmt.Fprintln(r.out, color.GreenString("%d file(s) checked: no problems", result.Files))
	}
	return nil
}

// printIssue writes "  • main.yaml [KEY]: message (dir)".
func (r *Reporter) printIssue(i Issue, c color.Attribute) {
	name := color.New(c).Sprint(filepath.Base(i.File))
	if i.Key != "" {
		name += " [" + i.Key + "]"
	}
	fmt.Fprintf(r.out, "  • %s: %s %s\n", name, i.Message,
		color.New(color.FgHiBlack).Sprintf("(%s)", filepath.Dir(i.File)))
}
