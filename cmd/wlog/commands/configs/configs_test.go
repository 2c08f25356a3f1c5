package configs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/wlog/cmd/wlog/commands/flags"
	"github.com/thoreinstein/wlog/internal/config"
	"github.com/thoreinstein/wlog/internal/errors"
	"github.com/thoreinstein/wlog/internal/factory"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// newHome lays out an install home with one edited live file and two
// factory defaults, and returns its settings.
func newHome(t *testing.T) *config.Settings {
	t.Helper()
	s := &config.Settings{Home: t.TempDir()}
	writeFile(t, filepath.Join(s.ConfigsDir(), "main.yaml"), "timeout: 999\nuser: me\n")
	writeFile(t, filepath.Join(s.FactoryResetsDir(), "main.yaml"), "timeout: 30\n")
	writeFile(t, filepath.Join(s.FactoryResetsDir(), "projects.yaml"), "active:\n  - alpha\n  - beta\n")
	return s
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// resetFlags puts every flag in the tree back to its default so runs do
// not leak into each other.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the configs command with args against s and returns stdout.
func run(t *testing.T, s *config.Settings, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(Cmd)
	flags.SetSettings(s)
	t.Cleanup(func() {
		flags.SetSettings(nil)
		resetFlags(Cmd)
	})

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&out)
	Cmd.SetIn(strings.NewReader(stdin))
	Cmd.SetArgs(args)

	err := Cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func backupFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*"+factory.BackupInfix+"*"))
	require.NoError(t, err)
	return matches
}

func TestConfigs_NoFlagsShowsHelp(t *testing.T) {
	out, err := run(t, newHome(t), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestConfigs_List(t *testing.T) {
	s := newHome(t)

	out, err := run(t, s, "", "-l")
	require.NoError(t, err)
	assert.Equal(t, "MAIN:\n  timeout: 999\n  user: me\n", out)
}

func TestConfigs_ListWithUserDirOverride(t *testing.T) {
	s := newHome(t)
	s.ConfigDir = t.TempDir()
	writeFile(t, filepath.Join(s.ConfigDir, "main.yaml"), "timeout: 5\n")
	writeFile(t, filepath.Join(s.ConfigDir, "extra.yaml"), "x: 1\n")

	out, err := run(t, s, "", "--list", "-o", "json")
	require.NoError(t, err)

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"timeout": float64(5)}, got["MAIN"], "user file replaces installed file whole")
	assert.Equal(t, map[string]any{"x": float64(1)}, got["EXTRA"])
}

func TestConfigs_ListBadFormat(t *testing.T) {
	_, err := run(t, newHome(t), "", "-l", "-o", "xml")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestConfigs_ListMissingUserDir(t *testing.T) {
	s := newHome(t)
	s.ConfigDir = filepath.Join(s.Home, "nope")

	_, err := run(t, s, "", "-l")
	var dirErr *errors.ConfigDirectoryNotFoundError
	require.ErrorAs(t, err, &dirErr)
	assert.Equal(t, s.ConfigDir, dirErr.Dir)
}

func TestConfigs_ListBadYAML(t *testing.T) {
	s := newHome(t)
	writeFile(t, filepath.Join(s.ConfigsDir(), "broken.yaml"), "a: [1, 2\n")

	_, err := run(t, s, "", "-l")
	var parseErr *errors.ConfigParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, filepath.Join(s.ConfigsDir(), "broken.yaml"), parseErr.Path)
}

func TestConfigs_GenerateKind(t *testing.T) {
	s := newHome(t)

	out, err := run(t, s, "", "-g", "-k", "main", "-l")
	require.NoError(t, err)

	assert.Contains(t, out, "restored main.yaml")
	assert.Contains(t, out, "MAIN:\n  timeout: 30\n")
	assert.NotContains(t, out, "PROJECTS", "only main was restored")

	backups := backupFiles(t, s.ConfigsDir())
	require.Len(t, backups, 1)
	assert.Equal(t, "timeout: 999\nuser: me\n", readFile(t, backups[0]))
}

func TestConfigs_GenerateAll(t *testing.T) {
	s := newHome(t)

	out, err := run(t, s, "", "-g")
	require.NoError(t, err)
	assert.Contains(t, out, "restored main.yaml")
	assert.Contains(t, out, "restored projects.yaml")

	assert.Equal(t, "timeout: 30\n", readFile(t, filepath.Join(s.ConfigsDir(), "main.yaml")))
	assert.Equal(t, "active:\n  - alpha\n  - beta\n", readFile(t, filepath.Join(s.ConfigsDir(), "projects.yaml")))
	assert.Len(t, backupFiles(t, s.ConfigsDir()), 1, "projects.yaml had no live copy")
}

func TestConfigs_GenerateUnknownKind(t *testing.T) {
	s := newHome(t)

	_, err := run(t, s, "", "-g", "-k", "nope")
	var missing *errors.MissingDefaultFileError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, filepath.Join(s.FactoryResetsDir(), "nope.yaml"), missing.Path)

	// Nothing was touched
	assert.Equal(t, "timeout: 999\nuser: me\n", readFile(t, filepath.Join(s.ConfigsDir(), "main.yaml")))
	assert.Empty(t, backupFiles(t, s.ConfigsDir()))
}

func TestList(t *testing.T) {
	s := newHome(t)
	writeFile(t, filepath.Join(s.ConfigsDir(), "projects.yaml"), "active: []\n")

	out, err := run(t, s, "", "list")
	require.NoError(t, err)
	assert.Equal(t, "MAIN\nPROJECTS\n", out)
}

func TestList_Sources(t *testing.T) {
	s := newHome(t)
	s.ConfigDir = t.TempDir()
	writeFile(t, filepath.Join(s.ConfigDir, "main.yaml"), "timeout: 5\n")

	out, err := run(t, s, "", "list", "--sources")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "SOURCE")
	assert.Contains(t, lines[1], filepath.Join(s.ConfigDir, "main.yaml"))
}

func TestGet(t *testing.T) {
	s := newHome(t)
	writeFile(t, filepath.Join(s.ConfigsDir(), "projects.yaml"), "active:\n  - alpha\n  - beta\nowner: ~\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "scalar", args: []string{"get", "MAIN.timeout"}, want: "999\n"},
		{name: "case-insensitive key", args: []string{"get", "main.user"}, want: "me\n"},
		{name: "list index", args: []string{"get", "projects.active.1"}, want: "beta\n"},
		{name: "null", args: []string{"get", "projects.owner"}, want: "null\n"},
		{name: "list as yaml", args: []string{"get", "projects.active"}, want: "- alpha\n- beta\n"},
		{name: "mapping as json", args: []string{"get", "main", "-o", "json"}, want: "{\n  \"timeout\": 999,\n  \"user\": \"me\"\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, s, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestGet_IntKeyedMappingAsJSON(t *testing.T) {
	s := newHome(t)
	writeFile(t, filepath.Join(s.ConfigsDir(), "net.yaml"), "ports:\n  80: http\n  443: https\n")

	out, err := run(t, s, "", "get", "net.ports", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"80":"http","443":"https"}`, out)

	out, err = run(t, s, "", "get", "net.ports.443")
	require.NoError(t, err)
	assert.Equal(t, "https\n", out)

	out, err = run(t, s, "", "-l", "-o", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[NET.ports]")
}

func TestGet_Missing(t *testing.T) {
	_, err := run(t, newHome(t), "", "get", "main.nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestRestore_ListDefaults(t *testing.T) {
	out, err := run(t, newHome(t), "", "restore", "--list-defaults")
	require.NoError(t, err)
	assert.Equal(t, "main.yaml\nprojects.yaml\n", out)
}

func TestRestore_Names(t *testing.T) {
	s := newHome(t)

	out, err := run(t, s, "", "restore", "projects", "main.yaml")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "restored projects.yaml", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "restored main.yaml (previous saved as main.yaml.bkdup_on_"), lines[1])
}

func TestRestore_TwiceKeepsBothBackups(t *testing.T) {
	s := newHome(t)

	_, err := run(t, s, "", "restore", "main")
	require.NoError(t, err)
	_, err = run(t, s, "", "restore", "main")
	require.NoError(t, err)

	assert.Len(t, backupFiles(t, s.ConfigsDir()), 2)
}

func TestRestore_Interactive(t *testing.T) {
	s := newHome(t)

	out, err := run(t, s, "2\n", "restore", "-i")
	require.NoError(t, err)

	assert.Contains(t, out, "[1] main.yaml (will back up current file)")
	assert.Contains(t, out, "[2] projects.yaml\n")
	assert.Contains(t, out, "restored projects.yaml")
	assert.Equal(t, "timeout: 999\nuser: me\n", readFile(t, filepath.Join(s.ConfigsDir(), "main.yaml")))
}

func TestRestore_InteractiveCancelled(t *testing.T) {
	s := newHome(t)

	out, err := run(t, s, "\n", "restore", "-i")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing restored.")
	assert.Empty(t, backupFiles(t, s.ConfigsDir()))
}

func TestRestore_InteractiveWithArgs(t *testing.T) {
	_, err := run(t, newHome(t), "", "restore", "-i", "main")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestRestore_MissingDefaultsDir(t *testing.T) {
	s := &config.Settings{Home: t.TempDir()}

	_, err := run(t, s, "", "restore")
	var dirErr *errors.ConfigDirectoryNotFoundError
	require.ErrorAs(t, err, &dirErr)
	assert.Equal(t, s.FactoryResetsDir(), dirErr.Dir)
}

func TestBackups(t *testing.T) {
	s := newHome(t)
	_, err := run(t, s, "", "restore", "main")
	require.NoError(t, err)

	out, err := run(t, s, "", "backups")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "main.yaml.bkdup_on_")

	out, err = run(t, s, "", "backups", "main", "--json")
	require.NoError(t, err)
	var got []factory.Backup
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "main.yaml", got[0].Name)
	assert.Equal(t, int64(len("timeout: 999\nuser: me\n")), got[0].Size)

	out, err = run(t, s, "", "backups", "projects", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestBackups_None(t *testing.T) {
	s := newHome(t)

	out, err := run(t, s, "", "backups")
	require.NoError(t, err)
	assert.Equal(t, "No backups in "+s.ConfigsDir()+"\n", out)
}
