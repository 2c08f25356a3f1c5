package aggregate

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/wlog/internal/errors"
)

// Format is an output format for an Aggregate.
type Format string

// Supported output formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Formats returns the supported output formats.
func Formats() []string {
	return []string{string(FormatYAML), string(FormatJSON), string(FormatTOML)}
}

// ParseFormat converts a user-supplied format name. Empty means YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatYAML:
		return FormatYAML, nil
	case FormatJSON, FormatTOML:
		return f, nil
	default:
		return "", errors.Newf("unknown format %q (valid: %s)", s, strings.Join(Formats(), ", "))
	}
}

// Encode writes the Aggregate to w. YAML output uses block style with keys
// sorted; JSON is indented by two spaces. For JSON and TOML, mapping keys
// that are not strings (80: http) are written in their YAML text form.
// TOML has no null, so a null value anywhere is an error naming its path.
func (a Aggregate) Encode(w io.Writer, format Format) error {
	return encodeValue(w, a, format)
}

// EncodeValue writes a single value, as returned by Lookup, to w.
func EncodeValue(w io.Writer, v any, format Format) error {
	return encodeValue(w, v, format)
}

func encodeValue(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(normalize(v)), "encoding JSON")
	case FormatTOML:
		v = normalize(v)
		if path, ok := findNull(v, ""); ok {
			return errors.Newf("encoding TOML: %s is null, which TOML cannot represent; use -o yaml or -o json", path)
		}
		return errors.Wrap(toml.NewEncoder(w).Encode(v), "encoding TOML")
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		return errors.Wrap(enc.Close(), "encoding YAML")
	default:
		return errors.Newf("unknown format %q", format)
	}
}

// normalize returns v with every mapping converted to map[string]any.
// yaml.v3 produces map[any]any for mappings with non-string keys, which
// neither encoding/json nor go-toml accepts.
func normalize(v any) any {
	switch node := v.(type) {
	case Aggregate:
		out := make(map[string]any, len(node))
		for k, m := range node {
			out[k] = normalize(m)
		}
		return out
	case Mapping:
		return normalize(map[string]any(node))
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, val := range node {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

// findNull returns the dotted path of the first null in a normalized
// value, walking keys in sorted order.
func findNull(v any, path string) (string, bool) {
	switch node := v.(type) {
	case nil:
		return path, true
	case map[string]any:
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if p, ok := findNull(node[k], join(path, k)); ok {
				return p, true
			}
		}
	case []any:
		for i, val := range node {
			if p, ok := findNull(val, join(path, fmt.Sprint(i))); ok {
				return p, true
			}
		}
	}
	return "", false
}

func join(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + "." + seg
}
