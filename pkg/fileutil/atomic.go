// Package fileutil provides filesystem helpers for config files: YAML
// discovery, bounded reads, and atomic writes and copies.
//
// Every function takes an [afero.Fs] so callers can run against the OS
// filesystem or an in-memory one.
package fileutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/wlog/internal/errors"
)

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// This ensures interrupted writes leave the original file intact.
//
// The caller is responsible for ensuring the parent directory exists.
// Permissions are applied to the final file via the perm parameter.
func AtomicWriteFile(fsys afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Same directory so the rename stays on one filesystem
	tmp, err := afero.TempFile(fsys, dir, ".wlog-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	defer func() {
		// Only present if the rename did not happen
		if ok, _ := afero.Exists(fsys, tmpName); ok {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := fsys.Chmod(tmpName, perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}

	if err := fsys.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}

	return nil
}

// CopyFile copies src to dst atomically, keeping the permission bits of src.
// dst is replaced if it exists. The parent directory of dst must exist.
func CopyFile(fsys afero.Fs, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrap(err, "stat source")
	}
	if info.IsDir() {
		return errors.Newf("source %s is a directory", src)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "reading source")
	}

	return AtomicWriteFile(fsys, dst, data, info.Mode().Perm())
}
