package factory

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/thoreinstein/wlog/internal/errors"
	"github.com/thoreinstein/wlog/pkg/fileutil"
)

// Manager restores factory-default config files into a live directory.
type Manager struct {
	fs          afero.Fs
	defaultsDir string
	liveDir     string
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithFs sets the filesystem the Manager operates on.
func WithFs(fsys afero.Fs) Option {
	return func(m *Manager) {
		if fsys != nil {
			m.fs = fsys
		}
	}
}

// WithClock sets the clock used for backup timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger used for restore messages.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a Manager that copies defaults from defaultsDir into
// liveDir. Conventionally defaultsDir is a child of liveDir.
func NewManager(defaultsDir, liveDir string, opts ...Option) *Manager {
	m := &Manager{
		fs:          afero.NewOsFs(),
		defaultsDir: defaultsDir,
		liveDir:     liveDir,
		now:         time.Now,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DefaultsDir returns the factory defaults directory.
func (m *Manager) DefaultsDir() string { return m.defaultsDir }

// LiveDir returns the live config directory.
func (m *Manager) LiveDir() string { return m.liveDir }

// Restore replaces the live copy of the config file name with its factory
// default. An existing live file is first renamed to a timestamped backup
// beside it. Restore is not idempotent: every call that finds a live file
// creates a new backup.
//
// If the copy fails after the backup rename, the live path is left absent
// and only the backup remains. The partial Result is returned alongside the
// error, and the error message names the backup path.
func (m *Manager) Restore(name string) (*Result, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, errors.NewValidation("invalid config file name: " + name)
	}

	defaultPath := filepath.Join(m.defaultsDir, name)
	livePath := filepath.Join(m.liveDir, name)

	info, err := m.fs.Stat(defaultPath)
	if err != nil || info.IsDir() {
		return nil, &errors.MissingDefaultFileError{Path: defaultPath}
	}

	res := &Result{
		Name:        name,
		DefaultPath: defaultPath,
		LivePath:    livePath,
	}

	if _, err := m.fs.Stat(livePath); err == nil {
		backupPath, err := m.backup(livePath)
		if err != nil {
			return nil, err
		}
		res.BackupPath = backupPath
	} else if !os.IsNotExist(err) {
		return nil, &errors.FilesystemError{Op: "stat", Src: livePath, Err: err}
	}

	if err := fileutil.CopyFile(m.fs, defaultPath, livePath); err != nil {
		var copyErr error = &errors.FilesystemError{Op: "copy", Src: defaultPath, Dst: livePath, Err: err}
		if res.BackupPath != "" {
			m.logger.Warn("live config left at backup path", "name", name, "backup", res.BackupPath)
			copyErr = errors.Wrapf(copyErr, "previous file saved as %s", res.BackupPath)
		}
		return res, copyErr
	}

	m.logger.Info("restored factory default", "name", name, "path", livePath, "backup", res.BackupPath)
	return res, nil
}

// backup renames livePath to its timestamped backup name and returns it.
func (m *Manager) backup(livePath string) (string, error) {
	stamp := m.now()
	backupPath := BackupPath(livePath, stamp)

	// Two restores within the same microsecond must not share a backup
	for {
		exists, err := afero.Exists(m.fs, backupPath)
		if err != nil {
			return "", &errors.FilesystemError{Op: "stat", Src: backupPath, Err: err}
		}
		if !exists {
			break
		}
		stamp = stamp.Add(time.Microsecond)
		backupPath = BackupPath(livePath, stamp)
	}

	if err := m.fs.Rename(livePath, backupPath); err != nil {
		return "", &errors.FilesystemError{Op: "rename", Src: livePath, Dst: backupPath, Err: err}
	}

	m.logger.Debug("backed up live config", "path", livePath, "backup", backupPath)
	return backupPath, nil
}

// RestoreAll restores every factory default. Each file is attempted even if
// an earlier one fails; the successful results are returned together with
// the joined errors of the failures.
func (m *Manager) RestoreAll() ([]Result, error) {
	names, err := m.Defaults()
	if err != nil {
		return nil, err
	}

	var (
		results []Result
		errs    []error
	)
	for _, name := range names {
		res, err := m.Restore(name)
		if err != nil {
			m.logger.Error("restore failed", "name", name, "error", err)
			errs = append(errs, errors.Wrapf(err, "restoring %s", name))
			continue
		}
		results = append(results, *res)
	}

	return results, errors.Join(errs...)
}

// Defaults returns the file names of the factory defaults, sorted.
func (m *Manager) Defaults() ([]string, error) {
	ok, err := fileutil.IsDir(m.fs, m.defaultsDir)
	if err != nil || !ok {
		if err == nil {
			err = errors.New("not a directory")
		}
		return nil, &errors.ConfigDirectoryNotFoundError{Dir: m.defaultsDir, Err: err}
	}

	files, err := fileutil.ListYAML(m.fs, m.defaultsDir)
	if err != nil {
		return nil, &errors.FilesystemError{Op: "list", Src: m.defaultsDir, Err: err}
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return names, nil
}

// ResolveKind maps a user-supplied kind to default file names. "all"
// selects every default; anything else is a file stem ("main") or name
// ("main.yaml") that must be present in the defaults directory.
func (m *Manager) ResolveKind(kind string) ([]string, error) {
	names, err := m.Defaults()
	if err != nil {
		return nil, err
	}
	if kind == KindAll {
		return names, nil
	}

	name := kind
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	if !slices.Contains(names, name) {
		return nil, &errors.MissingDefaultFileError{Path: filepath.Join(m.defaultsDir, name)}
	}
	return []string{name}, nil
}

// HasLive reports whether a live copy of name exists.
func (m *Manager) HasLive(name string) bool {
	ok, err := afero.Exists(m.fs, filepath.Join(m.liveDir, name))
	return err == nil && ok
}

// ReadDefault returns the content of the factory default name.
func (m *Manager) ReadDefault(name string) ([]byte, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, errors.NewValidation("invalid config file name: " + name)
	}
	path := filepath.Join(m.defaultsDir, name)
	data, err := fileutil.ReadFileWithLimit(m.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &errors.MissingDefaultFileError{Path: path}
		}
		return nil, &errors.FilesystemError{Op: "read", Src: path, Err: err}
	}
	return data, nil
}

// Backups lists the backup files in the live directory, newest first.
// With a non-empty name only backups of that config file are returned.
func (m *Manager) Backups(name string) ([]Backup, error) {
	infos, err := afero.ReadDir(m.fs, m.liveDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.ConfigDirectoryNotFoundError{Dir: m.liveDir, Err: err}
		}
		return nil, &errors.FilesystemError{Op: "list", Src: m.liveDir, Err: err}
	}

	var backups []Backup
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		b, ok := ParseBackupName(info.Name())
		if !ok {
			continue
		}
		if name != "" && b.Name != name {
			continue
		}
		b.Path = filepath.Join(m.liveDir, info.Name())
		b.Size = info.Size()
		backups = append(backups, b)
	}

	slices.SortFunc(backups, func(a, b Backup) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	return backups, nil
}
