// Package factory restores config files to their shipped factory defaults.
//
// A [Manager] is built with two directories: the factory defaults directory
// (conventionally <home>/configs/factory_resets) and the live directory the
// application reads (conventionally <home>/configs).
//
// # Restoring
//
// [Manager.Restore] copies one default over its live copy. When a live file
// already exists it is renamed first:
//
//	main.yaml  ->  main.yaml.bkdup_on_2026-10-18T14:03:05.123456
//
// The timestamp is local time in ISO 8601 form. The microsecond part is
// omitted when zero. Colons are not escaped, so backups cannot be created on
// filesystems that reject ":" in file names.
//
// Backups are never pruned. Restoring is not idempotent: each call that
// finds a live file leaves one more backup.
//
// [Manager.RestoreAll] restores every *.yaml default and keeps going past
// failures, returning the joined errors at the end.
//
// # Concurrency
//
// A Manager assumes a single writer. Concurrent restores of the same live
// path race; the last rename and copy win.
package factory
