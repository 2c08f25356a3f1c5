// Package logging provides structured logging for the wlog CLI using slog.
//
// Text output goes through [Handler], which colors levels and keys when
// stderr is a terminal. JSON output uses the standard [slog.JSONHandler].
// [MultiHandler] fans records out to several handlers so --log-file can
// write JSON alongside the console.
//
// # Levels
//
// The CLI maps -v flags to levels with [LevelFromVerbosity]. [LevelTrace]
// sits below Debug:
//
//	wlog configs        # warn
//	wlog -v configs     # info
//	wlog -vv configs    # debug
//	wlog -vvv configs   # trace
//
// # Context
//
// Commands read the configured logger back with [FromContext]:
//
//	logger := logging.FromContext(cmd.Context())
//	logger.Debug("scanning", "dir", dir)
//
// # Testing
//
// [ForTest] routes output to t.Log. [NewDiscard] drops everything.
package logging
