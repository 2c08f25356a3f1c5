// Package aggregate discovers YAML config files in a directory and merges
// them into an Aggregate keyed by upper-cased file stem.
package aggregate

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/wlog/internal/errors"
	"github.com/thoreinstein/wlog/pkg/fileutil"
)

// Mapping is the parsed content of one config file. Values are scalars,
// []any, or nested map[string]any as produced by yaml.v3.
type Mapping map[string]any

// Aggregate maps an upper-cased file stem to the Mapping parsed from it.
type Aggregate map[string]Mapping

// Aggregator scans config directories and merges their files.
type Aggregator struct {
	fs     afero.Fs
	logger *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithFs sets the filesystem the Aggregator reads from.
func WithFs(fsys afero.Fs) Option {
	return func(a *Aggregator) {
		if fsys != nil {
			a.fs = fsys
		}
	}
}

// WithLogger sets the logger used for discovery messages.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAggregator creates an Aggregator reading the OS filesystem.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		fs:     afero.NewOsFs(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Fs returns the filesystem the Aggregator reads from.
func (a *Aggregator) Fs() afero.Fs { return a.fs }

// Key returns the aggregate key for a config file path: its upper-cased stem.
func Key(path string) string {
	return strings.ToUpper(fileutil.Stem(path))
}

// ScanAndMerge parses every *.yaml file directly inside dir and merges the
// results into existing, replacing whole values for keys already present.
// A nil existing starts a new Aggregate. The updated Aggregate is returned.
//
// Every file is parsed before anything is merged, so on error existing is
// left untouched.
func (a *Aggregator) ScanAndMerge(dir string, existing Aggregate) (Aggregate, error) {
	files, err := a.list(dir)
	if err != nil {
		return existing, err
	}

	staged := make(Aggregate, len(files))
	sources := make(map[string]string, len(files))
	for _, path := range files {
		m, err := a.ParseOne(path)
		if err != nil {
			return existing, err
		}

		key := Key(path)
		if prev, dup := sources[key]; dup {
			a.logger.Warn("config stems collide, later file wins",
				"key", key, "dropped", prev, "kept", path)
		}
		sources[key] = path
		staged[key] = m
		a.logger.Debug("parsed config", "key", key, "path", path)
	}

	if existing == nil {
		existing = make(Aggregate, len(staged))
	}
	for key := range staged {
		if _, ok := existing[key]; ok {
			a.logger.Debug("config overridden", "key", key, "path", sources[key])
		}
	}
	existing.Merge(staged)

	a.logger.Debug("scanned config directory", "dir", dir, "files", len(files))
	return existing, nil
}

// ParseOne parses a single YAML file into a Mapping. An empty path or an
// empty document yields an empty Mapping. A document whose top level is not
// a mapping is rejected.
func (a *Aggregator) ParseOne(path string) (Mapping, error) {
	if path == "" {
		return Mapping{}, nil
	}

	data, err := fileutil.ReadFileWithLimit(a.fs, path)
	if err != nil {
		return nil, &errors.ConfigParseError{Path: path, Err: err}
	}

	m, err := Parse(data)
	if err != nil {
		return nil, &errors.ConfigParseError{Path: path, Err: err}
	}
	return m, nil
}

// Parse decodes YAML bytes into a Mapping. Only the first document of a
// multi-document stream is used.
func Parse(data []byte) (Mapping, error) {
	var node yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return Mapping{}, nil
		}
		return nil, errors.Wrap(err, "decoding YAML")
	}

	doc := &node
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return Mapping{}, nil
		}
		doc = doc.Content[0]
	}

	switch doc.Kind {
	case yaml.MappingNode:
	case yaml.ScalarNode:
		// A document holding only "~" or "null" counts as empty
		if doc.ShortTag() == "!!null" {
			return Mapping{}, nil
		}
		return nil, errors.Newf("top-level value must be a mapping, got scalar %q", doc.Value)
	case yaml.SequenceNode:
		return nil, errors.New("top-level value must be a mapping, got sequence")
	default:
		return nil, errors.New("top-level value must be a mapping")
	}

	var raw map[string]any
	if err := doc.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decoding YAML mapping")
	}
	if raw == nil {
		return Mapping{}, nil
	}
	return Mapping(raw), nil
}

// Merge copies every entry of src into a, replacing existing values whole.
func (a Aggregate) Merge(src Aggregate) {
	for key, m := range src {
		a[key] = m
	}
}

// Sources returns the config file paths ScanAndMerge would read from dir,
// keyed by aggregate key. It is used to report where values came from.
func (a *Aggregator) Sources(dir string) (map[string]string, error) {
	files, err := a.list(dir)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(files))
	for _, path := range files {
		out[Key(path)] = path
	}
	return out, nil
}

// list returns the config files in dir after checking that dir is a directory.
func (a *Aggregator) list(dir string) ([]string, error) {
	ok, err := fileutil.IsDir(a.fs, dir)
	if err != nil {
		return nil, &errors.ConfigDirectoryNotFoundError{Dir: dir, Err: err}
	}
	if !ok {
		return nil, &errors.ConfigDirectoryNotFoundError{Dir: dir, Err: errors.New("not a directory")}
	}

	files, err := fileutil.ListYAML(a.fs, dir)
	if err != nil {
		return nil, &errors.FilesystemError{Op: "list", Src: dir, Err: err}
	}
	return files, nil
}
