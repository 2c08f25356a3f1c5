package fileutil

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/wlog/internal/errors"
)

// MaxFileSize is the maximum file size we'll read (1MB).
// This prevents memory exhaustion from maliciously large files.
const MaxFileSize = 1024 * 1024 // 1MB

// YAMLPattern is the glob matched by config discovery.
const YAMLPattern = "*.yaml"

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file up to MaxFileSize.
// It returns an error if the file is larger than the limit.
func ReadFileWithLimit(fsys afero.Fs, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast if size is already too large
	info, err := f.Stat()
	if err == nil {
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", path)
		}
		if info.Size() > MaxFileSize {
			return nil, ErrFileTooLarge
		}
	}

	r := io.LimitReader(f, MaxFileSize+1)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}

// ListYAML returns the paths of the regular files directly inside dir whose
// names match YAMLPattern, sorted by name. Dot-prefixed names such as
// .local.yaml match too.
//
// The caller is expected to have checked that dir exists.
func ListYAML(fsys afero.Fs, dir string) ([]string, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading directory %s", dir)
	}

	var out []string
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() {
			continue
		}
		ok, err := filepath.Match(YAMLPattern, name)
		if err != nil {
			return nil, errors.Wrap(err, "matching pattern")
		}
		if ok {
			out = append(out, filepath.Join(dir, name))
		}
	}
	return out, nil
}

// Stem returns the file name of path without its extension. A name that is
// only an extension, such as ".yaml", is its own stem.
func Stem(path string) string {
	base := filepath.Base(path)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return base
}

// IsDir reports whether path exists and is a directory.
func IsDir(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
