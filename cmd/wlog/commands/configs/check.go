package configs

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/wlog/cmd/wlog/commands/flags"
	"github.com/thoreinstein/wlog/internal/errors"
	"github.com/thoreinstein/wlog/internal/logging"
	"github.com/thoreinstein/wlog/internal/validator"
)

var checkJSON bool

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check config files for problems",
	Long: `Parse every config file in <home>/configs, the factory defaults, and the
-c directory, and report all problems at once.

Errors (unreadable or invalid YAML, missing directories) make the command
exit non-zero. Warnings cover *.yml files that are ignored, stems that
collide by case, and top-level keys a factory default has but the live
copy lacks.`,
	Example: `  wlog configs check
  wlog -c ~/my-wlog configs check --json`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	s, err := flags.GetSettings()
	if err != nil {
		return err
	}

	checker := validator.NewChecker(validator.WithLogger(logging.FromContext(cmd.Context())))
	result := checker.Check(validator.Dirs{
		Live:     s.ConfigsDir(),
		Defaults: s.FactoryResetsDir(),
		User:     s.ConfigDir,
	})

	format := validator.FormatText
	if checkJSON {
		format = validator.FormatJSON
	}
	if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(result); err != nil {
		return err
	}

	if err := result.Err(); err != nil {
		return errors.NewUserError(err, "Fix the files listed above or run: wlog configs restore")
	}
	return nil
}
