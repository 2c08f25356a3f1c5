package configs

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/wlog/cmd/wlog/commands/flags"
	"github.com/thoreinstein/wlog/internal/aggregate"
	"github.com/thoreinstein/wlog/internal/editor"
	"github.com/thoreinstein/wlog/internal/errors"
	"github.com/thoreinstein/wlog/internal/logging"
	"github.com/thoreinstein/wlog/pkg/fileutil"
)

var editUser bool

func init() {
	editCmd.Flags().BoolVarP(&editUser, "user", "u", false,
		"edit the file in the -c directory instead of <home>/configs")
	Cmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Open a config file in your editor",
	Long: `Open <home>/configs/NAME.yaml in $WLOG_EDITOR, $EDITOR or $VISUAL, then
parse it again so mistakes show up right away.

The file must already exist; run "wlog configs restore NAME" to create it
from its factory default.`,
	Example: `  wlog configs edit main
  EDITOR="code --wait" wlog configs edit projects
  wlog -c ~/my-wlog configs edit main --user`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, err := flags.GetSettings()
	if err != nil {
		return err
	}

	dir := s.ConfigsDir()
	if editUser {
		if s.ConfigDir == "" {
			return errors.NewUserError(errors.New("--user needs a config directory"), "Pass -c DIR")
		}
		dir = s.ConfigDir
	}

	name := args[0]
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	path := filepath.Join(dir, name)

	logger := logging.FromContext(cmd.Context())
	a := aggregate.NewAggregator(aggregate.WithLogger(logger))
	if ok, _ := fileutil.IsDir(a.Fs(), dir); !ok {
		return &errors.ConfigDirectoryNotFoundError{Dir: dir}
	}
	if _, err := a.Fs().Stat(path); err != nil {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "config file %s", path),
			"Run: wlog configs restore "+strings.TrimSuffix(name, ".yaml"))
	}

	ed := editor.New()
	ed.Stdin = cmd.InOrStdin()
	ed.Stdout = cmd.OutOrStdout()
	ed.Stderr = cmd.ErrOrStderr()
	if err := ed.Open(cmd.Context(), path); err != nil {
		return errors.NewSystemError(err, "Set WLOG_EDITOR or EDITOR to an installed editor")
	}

	if _, err := a.ParseOne(path); err != nil {
		return err
	}
	logger.Info("config saved", "path", path)
	return nil
}
