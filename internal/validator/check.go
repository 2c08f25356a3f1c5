package validator

import (
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/wlog/internal/aggregate"
	"github.com/thoreinstein/wlog/internal/errors"
	"github.com/thoreinstein/wlog/pkg/fileutil"
)

// Dirs names the directories a Checker examines. Empty entries are skipped.
type Dirs struct {
	Live     string
	Defaults string
	User     string
}

// Checker validates config directories.
type Checker struct {
	fs     afero.Fs
	logger *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithFs sets the filesystem the Checker reads from.
func WithFs(fsys afero.Fs) Option {
	return func(c *Checker) {
		if fsys != nil {
			c.fs = fsys
		}
	}
}

// WithLogger sets the logger passed to the parser.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChecker creates a Checker reading the OS filesystem.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		fs:     afero.NewOsFs(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check examines every directory in d and returns all issues found.
func (c *Checker) Check(d Dirs) *Result {
	result := &Result{}

	live := c.checkDir(d.Live, result)
	defaults := c.checkDir(d.Defaults, result)
	c.checkDir(d.User, result)

	if live != nil && defaults != nil {
		c.compare(d, live, defaults, result)
	}
	return result
}

// checkDir validates the config files in dir and returns the ones that
// parsed, keyed by file name. It returns nil when dir is unusable.
func (c *Checker) checkDir(dir string, result *Result) map[string]aggregate.Mapping {
	if dir == "" {
		return nil
	}

	ok, err := fileutil.IsDir(c.fs, dir)
	if err != nil || !ok {
		result.AddError(dir, "", "directory not found")
		return nil
	}

	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		result.AddError(dir, "", "cannot list directory: "+err.Error())
		return nil
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yml") {
			result.AddWarning(filepath.Join(dir, e.Name()), "", "ignored: only .yaml files are read")
		}
	}

	files, err := fileutil.ListYAML(c.fs, dir)
	if err != nil {
		result.AddError(dir, "", "cannot list directory: "+err.Error())
		return nil
	}

	parser := aggregate.NewAggregator(aggregate.WithFs(c.fs), aggregate.WithLogger(c.logger))
	parsed := make(map[string]aggregate.Mapping, len(files))
	seen := make(map[string]string, len(files))
	for _, path := range files {
		result.Files++

		key := aggregate.Key(path)
		if prev, dup := seen[key]; dup {
			result.AddWarning(path, key, "stem collides with "+filepath.Base(prev)+"; this file wins")
		}
		seen[key] = path

		m, err := parser.ParseOne(path)
		if err != nil {
			result.AddError(path, key, parseMessage(err))
			continue
		}
		parsed[filepath.Base(path)] = m
	}
	return parsed
}

// compare reports defaults without a live copy and top-level keys a live
// copy lacks.
func (c *Checker) compare(d Dirs, live, defaults map[string]aggregate.Mapping, result *Result) {
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		livePath := filepath.Join(d.Live, name)
		key := aggregate.Key(name)

		lm, ok := live[name]
		if !ok {
			if exists, _ := afero.Exists(c.fs, livePath); !exists {
				result.AddInfo(filepath.Join(d.Defaults, name), key,
					"no live copy; run: wlog configs restore "+strings.TrimSuffix(name, ".yaml"))
			}
			continue
		}

		var missing []string
		for k := range defaults[name] {
			if _, ok := lm[k]; !ok {
				missing = append(missing, k)
			}
		}
		slices.Sort(missing)
		for _, k := range missing {
			result.AddWarning(livePath, key, "missing key "+k+" present in the factory default")
		}
	}
}

func parseMessage(err error) string {
	var parseErr *errors.ConfigParseError
	if errors.As(err, &parseErr) && parseErr.Err != nil {
		return parseErr.Err.Error()
	}
	return err.Error()
}
