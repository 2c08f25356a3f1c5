// Package commands implements the CLI commands for wlog.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/wlog/cmd"
	"github.com/thoreinstein/wlog/cmd/wlog/commands/flags"
	"github.com/thoreinstein/wlog/internal/config"
	"github.com/thoreinstein/wlog/internal/errors"
	"github.com/thoreinstein/wlog/internal/logging"
)

// debugEnv is consulted when no -v flag is given.
const debugEnv = "WLOG_DEBUG"

// configDir holds the value of the -c/--config flag.
var configDir string

// homeDir holds the value of the --home-dir flag.
var homeDir string

// printHome holds the value of the --home flag.
var printHome bool

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

func init() {
	cobra.OnInitialize(config.Init)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configDir, "config", "c", "",
		"user config directory merged over the installed configs")
	pf.StringVar(&homeDir, "home-dir", "",
		"install home directory (default $XDG_CONFIG_HOME/wlog)")
	pf.CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	pf.BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	pf.StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	pf.StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Flags().BoolVar(&printHome, "home", false,
		"print the install home directory and exit")

	// Flags win over WLOG_* variables, which win over defaults
	_ = viper.BindPFlag(config.KeyConfigDir, pf.Lookup("config"))
	_ = viper.BindPFlag(config.KeyHome, pf.Lookup("home-dir"))

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("wlog version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "wlog",
	Short: "Manage the YAML configuration of a work log",
	Long: `wlog loads its configuration from YAML files and keeps a pristine
factory copy of each one.

Every *.yaml file in <home>/configs becomes one config, named by its
upper-cased file stem (main.yaml -> MAIN). Files in a directory given with
-c override installed files with the same stem.

Factory defaults live in <home>/configs/factory_resets. Restoring one
moves the current file aside to a timestamped backup first.`,
	Example: `  # Print where wlog is installed
  wlog --home

  # Show the merged configuration
  wlog configs -l

  # Merge a personal directory over the installed configs
  wlog -c ~/my-wlog configs -l

  # Restore main.yaml from its factory default
  wlog configs -g -k main

  See Also: wlog configs`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return loadSettings(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if printHome {
			s, err := flags.GetSettings()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Home)
			return nil
		}
		return cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(
			errors.New("--quiet and --verbose cannot be used together"),
			"Use either -q or -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			switch os.Getenv(debugEnv) {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format := logging.Format(logFormat)
	if format != logging.FormatText && format != logging.FormatJSON {
		return errors.NewUserError(
			errors.Newf("unknown log format %q", logFormat),
			"Use --log-format text or --log-format json")
	}

	primary := logging.New(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}).Handler()

	handler := primary
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "Check that the --log-file directory exists and is writable")
		}
		// File output is JSON regardless of --log-format
		handler = logging.NewMultiHandler(primary,
			slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// loadSettings resolves settings from flags, environment, and defaults and
// hands them to subcommands.
func loadSettings(cmd *cobra.Command) error {
	switch cmd.Name() {
	case "help", "version", "gen-doc":
		return nil
	}

	s, err := config.Load()
	if err != nil {
		return errors.NewUserError(errors.Wrap(err, "loading settings"),
			"Check --home-dir, --config, WLOG_HOME and WLOG_CONFIG_DIR")
	}
	flags.SetSettings(s)

	logging.FromContext(cmd.Context()).Debug("resolved settings",
		"home", s.Home, "config_dir", s.ConfigDir)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
