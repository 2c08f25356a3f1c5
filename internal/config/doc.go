// Package config resolves the settings wlog needs before it touches any
// config file: the install home and an optional user config directory.
//
// Settings come from three sources, highest precedence first:
//
//   - command-line flags bound with viper.BindPFlag (--home-dir, --config)
//   - environment variables (WLOG_HOME, WLOG_CONFIG_DIR)
//   - defaults (home = <XDG config home>/wlog)
//
// Typical use from the CLI:
//
//	config.Init()
//	settings, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	agg, err := aggregate.NewAggregator().ScanAndMerge(settings.ConfigsDir(), nil)
//
// Settings are resolved once and passed down explicitly; no package derives
// paths from the working directory or the executable location.
package config
