package factory

import (
	"fmt"
	"strings"
	"time"
)

// KindAll selects every factory default.
const KindAll = "all"

// BackupInfix separates the original file name from the timestamp in a
// backup file name: <name>.bkdup_on_<timestamp>.
const BackupInfix = ".bkdup_on_"

// Timestamp layouts, ISO 8601 without zone, with and without microseconds.
const (
	stampLayout      = "2006-01-02T15:04:05"
	stampLayoutMicro = "2006-01-02T15:04:05.000000"
)

// Result describes one restored config file.
type Result struct {
	// Name is the config file name, e.g. "main.yaml".
	Name string `json:"name"`

	// DefaultPath is the factory default that was copied.
	DefaultPath string `json:"default_path"`

	// LivePath is the restored live config file.
	LivePath string `json:"live_path"`

	// BackupPath is where the previous live file was moved.
	// Empty when there was no live file.
	BackupPath string `json:"backup_path,omitempty"`
}

// Backup is a backup file found in the live directory.
type Backup struct {
	// Name is the config file the backup was taken from.
	Name string `json:"name"`

	// Path is the backup file path.
	Path string `json:"path"`

	// CreatedAt is the timestamp encoded in the file name.
	CreatedAt time.Time `json:"created_at"`

	// Size is the backup file size in bytes.
	Size int64 `json:"size"`
}

// FormatTimestamp renders t as ISO 8601 local date-time with no zone:
// 2006-01-02T15:04:05, followed by .ffffff when the microsecond part is
// non-zero. Colons are kept as is.
func FormatTimestamp(t time.Time) string {
	s := t.Format(stampLayout)
	if us := t.Nanosecond() / int(time.Microsecond); us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

// ParseTimestamp parses a timestamp produced by FormatTimestamp in the
// local time zone.
func ParseTimestamp(s string) (time.Time, error) {
	layout := stampLayout
	if strings.Contains(s, ".") {
		layout = stampLayoutMicro
	}
	return time.ParseInLocation(layout, s, time.Local)
}

// BackupPath returns the backup path for livePath taken at t.
func BackupPath(livePath string, t time.Time) string {
	return livePath + BackupInfix + FormatTimestamp(t)
}

// ParseBackupName splits a backup file name into the original config name
// and its timestamp. It reports false for names that are not backups.
func ParseBackupName(fileName string) (Backup, bool) {
	i := strings.LastIndex(fileName, BackupInfix)
	if i <= 0 {
		return Backup{}, false
	}

	created, err := ParseTimestamp(fileName[i+len(BackupInfix):])
	if err != nil {
		return Backup{}, false
	}

	return Backup{
		Name:      fileName[:i],
		CreatedAt: created,
	}, true
}
