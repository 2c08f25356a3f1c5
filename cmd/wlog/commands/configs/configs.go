// Package configs provides the CLI commands for reading the merged
// configuration and restoring factory defaults.
package configs

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/wlog/internal/aggregate"
	"github.com/thoreinstein/wlog/internal/factory"
)

var (
	listFlag     bool
	generateFlag bool
	kindFlag     string
	outputFlag   string
)

func init() {
	Cmd.Flags().BoolVarP(&listFlag, "list", "l", false,
		"print the merged configuration")
	Cmd.Flags().BoolVarP(&generateFlag, "generate-config", "g", false,
		"restore factory defaults selected by --kind")
	Cmd.Flags().StringVarP(&kindFlag, "kind", "k", factory.KindAll,
		"which default to restore: all, or a file stem such as main")
	Cmd.Flags().StringVarP(&outputFlag, "output", "o", string(aggregate.FormatYAML),
		"output format for --list: yaml, json, toml")
}

// Cmd is the root configs command.
var Cmd = &cobra.Command{
	Use:   "configs",
	Short: "Show and restore configuration",
	Long: `Show the merged configuration or restore factory defaults.

With -g, the defaults selected by -k are copied from
<home>/configs/factory_resets into <home>/configs. A file already in place
is renamed to <name>.bkdup_on_<timestamp> first.

With -l, every *.yaml file in <home>/configs is parsed, then files from
the -c directory override them by stem, and the result is printed.

When both are given, defaults are restored before listing.`,
	Example: `  # Print the merged configuration
  wlog configs -l

  # Same, as JSON
  wlog configs -l -o json

  # Restore every default
  wlog configs -g

  # Restore only main.yaml, then show the result
  wlog configs -g -k main -l

  See Also:
    wlog configs list    - List config keys
    wlog configs get     - Print one value
    wlog configs restore - Restore factory defaults
    wlog configs backups - List backups made by restore
    wlog configs check   - Report problems in config files
    wlog configs edit    - Open a config file in your editor`,
	Args: cobra.NoArgs,
	RunE: runConfigs,
}

func runConfigs(cmd *cobra.Command, _ []string) error {
	if !listFlag && !generateFlag {
		return cmd.Help()
	}

	if generateFlag {
		mgr, err := newManager(cmd)
		if err != nil {
			return err
		}
		var names []string
		if kindFlag != factory.KindAll {
			if names, err = mgr.ResolveKind(kindFlag); err != nil {
				return err
			}
		}
		if err := restore(cmd, mgr, names); err != nil {
			return err
		}
	}

	if listFlag {
		format, err := parseFormat(outputFlag)
		if err != nil {
			return err
		}
		agg, _, err := loadAggregate(cmd, false)
		if err != nil {
			return err
		}
		return agg.Encode(cmd.OutOrStdout(), format)
	}

	return nil
}
