package configs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/wlog/internal/aggregate"
	"github.com/thoreinstein/wlog/internal/errors"
)

var getOutput string

func init() {
	getCmd.Flags().StringVarP(&getOutput, "output", "o", string(aggregate.FormatYAML),
		"output format for nested values: yaml, json, toml")
	Cmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get KEY[.path...]",
	Short: "Print one config value",
	Long: `Print a value from the merged configuration.

The first path segment names the config file (case-insensitive), the rest
walk into nested mappings. A numeric segment indexes a list. Scalars are
printed as is; mappings and lists are encoded with -o.`,
	Example: `  wlog configs get main
  wlog configs get MAIN.timeout
  wlog configs get projects.active.0
  wlog configs get main -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(getOutput)
	if err != nil {
		return err
	}

	agg, _, err := loadAggregate(cmd, false)
	if err != nil {
		return err
	}

	v, ok := agg.Lookup(args[0])
	if !ok {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "config value %q", args[0]),
			"Run: wlog configs list")
	}

	w := cmd.OutOrStdout()
	switch v.(type) {
	case map[string]any, map[any]any, []any, aggregate.Mapping:
		return aggregate.EncodeValue(w, v, format)
	case nil:
		fmt.Fprintln(w, "null")
	default:
		fmt.Fprintln(w, v)
	}
	return nil
}
