// Package errors provides the error taxonomy and exit code conventions for
// the wlog CLI.
//
// # Domain Errors
//
// Every failure of the config aggregator and the factory reset manager is
// reported as one of four typed errors, each carrying the offending path:
//
//   - [ConfigDirectoryNotFoundError]: a directory to scan is missing
//   - [ConfigParseError]: a config file is unreadable or not a YAML mapping
//   - [MissingDefaultFileError]: a factory default file does not exist
//   - [FilesystemError]: a rename or copy failed (operation, source, destination)
//
// All of them match [ErrWlog] with [errors.Is]:
//
//	if errors.Is(err, wlogerrors.ErrWlog) {
//	    // failure raised by wlog itself
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (missing directory, malformed YAML, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, disk space)
//
// [FromError] maps any error to an [ExitError] with a code and suggestion,
// which the binary prints before exiting.
package errors
