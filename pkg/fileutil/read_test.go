package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/wlog/internal/errors"
)

func TestReadFileWithLimit(t *testing.T) {
	tempDir := t.TempDir()
	fsys := afero.NewOsFs()

	tests := []struct {
		name    string
		size    int64
		wantErr bool
	}{
		{"small file", 100, false},
		{"exact limit", MaxFileSize, false},
		{"too large", MaxFileSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tempDir, tt.name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.Truncate(tt.size); err != nil {
				t.Fatal(err)
			}
			f.Close()

			_, err = ReadFileWithLimit(fsys, path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFileWithLimit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrFileTooLarge) {
				t.Errorf("expected ErrFileTooLarge, got %v", err)
			}
		})
	}
}

func TestReadFileWithLimit_Missing(t *testing.T) {
	_, err := ReadFileWithLimit(afero.NewMemMapFs(), "/nope.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestListYAML(t *testing.T) {
	fsys := afero.NewMemMapFs()
	files := map[string]string{
		"/cfg/main.yaml":             "a: 1",
		"/cfg/extra.yaml":            "b: 2",
		"/cfg/.hidden.yaml":          "c: 3",
		"/cfg/notes.yml":             "d: 4",
		"/cfg/readme.txt":            "e",
		"/cfg/factory_resets/x.yaml": "f: 5",
		"/cfg/main.yaml.bkdup_on_2026-01-02T03:04:05": "g: 6",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
	require.NoError(t, fsys.MkdirAll("/cfg/dir.yaml", 0o755))

	got, err := ListYAML(fsys, "/cfg")
	require.NoError(t, err)
	assert.Equal(t, []string{"/cfg/.hidden.yaml", "/cfg/extra.yaml", "/cfg/main.yaml"}, got)
}

func TestListYAML_Empty(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/empty", 0o755))

	got, err := ListYAML(fsys, "/empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStem(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.yaml", "main"},
		{"/etc/wlog/configs/projects.yaml", "projects"},
		{"a.b.yaml", "a.b"},
		{"noext", "noext"},
		{"/cfg/.local.yaml", ".local"},
		{"/cfg/.yaml", ".yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.path))
		})
	}
}

func TestIsDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/d", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/f", []byte("x"), 0o644))

	ok, err := IsDir(fsys, "/d")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsDir(fsys, "/f")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = IsDir(fsys, "/missing")
	assert.Error(t, err)
}
