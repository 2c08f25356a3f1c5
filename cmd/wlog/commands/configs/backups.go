package configs

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/wlog/internal/errors"
	"github.com/thoreinstein/wlog/internal/factory"
)

var backupsJSON bool

func init() {
	backupsCmd.Flags().BoolVar(&backupsJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(backupsCmd)
}

var backupsCmd = &cobra.Command{
	Use:   "backups [NAME]",
	Short: "List backups made by restore",
	Long: `List the backup files restore left in <home>/configs, newest first.

NAME limits the list to one config file (main or main.yaml). Backups are
never deleted by wlog; remove them by hand when no longer needed.`,
	Example: `  wlog configs backups
  wlog configs backups main
  wlog configs backups --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackups,
}

func runBackups(cmd *cobra.Command, args []string) error {
	mgr, err := newManager(cmd)
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
		if !strings.HasSuffix(name, ".yaml") {
			name += ".yaml"
		}
	}

	backups, err := mgr.Backups(name)
	if err != nil {
		return err
	}

	if backupsJSON {
		return outputBackupsJSON(cmd.OutOrStdout(), backups)
	}
	return outputBackupsTabular(cmd.OutOrStdout(), mgr.LiveDir(), backups)
}

func outputBackupsJSON(w io.Writer, backups []factory.Backup) error {
	if backups == nil {
		backups = []factory.Backup{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(backups), "encoding output")
}

func outputBackupsTabular(w io.Writer, dir string, backups []factory.Backup) error {
	if len(backups) == 0 {
		fmt.Fprintf(w, "No backups in %s\n", dir)
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", bold("NAME"), bold("CREATED"), bold("SIZE"), bold("FILE"))
	for _, b := range backups {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			green(b.Name),
			b.CreatedAt.Format("2006-01-02 15:04:05"),
			b.Size,
			filepath.Base(b.Path))
	}
	return tw.Flush()
}
