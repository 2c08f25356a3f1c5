package configs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/wlog/internal/cli/prompt"
	"github.com/thoreinstein/wlog/internal/errors"
	"github.com/thoreinstein/wlog/internal/factory"
	"github.com/thoreinstein/wlog/internal/logging"
)

var (
	restoreInteractive  bool
	restoreListDefaults bool
)

func init() {
	restoreCmd.Flags().BoolVarP(&restoreInteractive, "interactive", "i", false,
		"choose which defaults to restore")
	restoreCmd.Flags().BoolVar(&restoreListDefaults, "list-defaults", false,
		"print the available factory defaults and exit")
	Cmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [all | NAME...]",
	Short: "Restore factory defaults",
	Long: `Copy factory defaults from <home>/configs/factory_resets over the live
files in <home>/configs.

NAME is a default's file name or stem (main.yaml or main). With no
arguments, or with "all", every default is restored. A live file that
already exists is renamed to <name>.bkdup_on_<timestamp> before it is
replaced; backups are never deleted.

When restoring several files, a failure does not stop the others. All
failures are reported at the end.`,
	Example: `  # Restore everything
  wlog configs restore

  # Restore two files
  wlog configs restore main projects

  # Pick interactively
  wlog configs restore -i

  # See what can be restored
  wlog configs restore --list-defaults`,
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	mgr, err := newManager(cmd)
	if err != nil {
		return err
	}

	if restoreListDefaults {
		names, err := mgr.Defaults()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	var names []string
	switch {
	case restoreInteractive:
		if len(args) > 0 {
			return errors.NewUserError(errors.New("--interactive takes no arguments"), "Drop the names or the -i flag")
		}
		names, err = pickDefaults(cmd, mgr)
		if errors.Is(err, prompt.ErrSelectionCancelled) || (err == nil && len(names) == 0) {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing restored.")
			return nil
		}
	case len(args) == 0 || (len(args) == 1 && args[0] == factory.KindAll):
		// nil restores every default
	default:
		for _, arg := range args {
			resolved, rerr := mgr.ResolveKind(arg)
			if rerr != nil {
				return rerr
			}
			names = append(names, resolved...)
		}
	}
	if err != nil {
		return err
	}

	return restore(cmd, mgr, names)
}

// restore restores names, or every default when names is nil, and prints
// one line per file. Failures do not stop later files.
func restore(cmd *cobra.Command, mgr *factory.Manager, names []string) error {
	var (
		results []factory.Result
		err     error
	)
	if names == nil {
		results, err = mgr.RestoreAll()
	} else {
		var errs []error
		for _, name := range names {
			res, rerr := mgr.Restore(name)
			if rerr != nil {
				errs = append(errs, errors.Wrapf(rerr, "restoring %s", name))
				continue
			}
			results = append(results, *res)
		}
		err = errors.Join(errs...)
	}

	printResults(cmd.OutOrStdout(), results)
	return err
}

func printResults(w io.Writer, results []factory.Result) {
	green := color.New(color.FgGreen).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	for _, r := range results {
		if r.BackupPath == "" {
			fmt.Fprintf(w, "%s %s\n", green("restored"), r.Name)
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", green("restored"), r.Name,
			gray("(previous saved as "+filepath.Base(r.BackupPath)+")"))
	}
}

// pickDefaults asks which defaults to restore. A terminal gets the fuzzy
// finder with a preview of each file; anything else gets a numbered prompt.
func pickDefaults(cmd *cobra.Command, mgr *factory.Manager) ([]string, error) {
	names, err := mgr.Defaults()
	if err != nil {
		return nil, err
	}

	items := make([]prompt.Item, len(names))
	for i, name := range names {
		items[i] = prompt.Item{Name: name}
		if mgr.HasLive(name) {
			items[i].Detail = "will back up current file"
		}
		if data, err := mgr.ReadDefault(name); err == nil {
			items[i].Preview = string(data)
		}
	}

	var picked []int
	if logging.IsTTY(os.Stdin) && logging.IsTTY(cmd.OutOrStdout()) {
		picked, err = prompt.FuzzySelectMany("Restore which defaults? (Tab to mark)", items)
	} else {
		picked, err = prompt.NewSelectorWithIO(cmd.InOrStdin(), cmd.OutOrStdout()).
			SelectMany("Restore which defaults", items)
	}
	if err != nil {
		return nil, err
	}

	out := make([]string, len(picked))
	for i, idx := range picked {
		out[i] = names[idx]
	}
	return out, nil
}
