package configs

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listSources bool

func init() {
	listCmd.Flags().BoolVar(&listSources, "sources", false, "show the file each key was read from")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List config keys",
	Long: `List the keys of the merged configuration, one per line.

A key is the upper-cased stem of a *.yaml file. With --sources the file
that supplied each key is shown, which tells whether a -c directory
overrode the installed copy.`,
	Example: `  wlog configs list
  wlog -c ~/my-wlog configs list --sources`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	agg, sources, err := loadAggregate(cmd, listSources)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if !listSources {
		for _, key := range agg.Keys() {
			fmt.Fprintln(w, key)
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tSOURCE")
	for _, key := range agg.Keys() {
		fmt.Fprintf(tw, "%s\t%s\n", key, sources[key])
	}
	return tw.Flush()
}
