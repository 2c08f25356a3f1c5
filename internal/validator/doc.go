// Package validator checks wlog config directories without changing them.
//
// A [Checker] looks at the live directory, the factory defaults directory,
// and an optional user directory, and collects every problem it finds into
// a [Result] instead of stopping at the first one:
//
//   - files that are not valid YAML or whose top level is not a mapping
//   - stems that collide when upper-cased (Main.yaml and main.yaml)
//   - *.yml files, which discovery ignores
//   - factory defaults with no live copy
//   - top-level keys a factory default has but its live copy lacks
//
// [Reporter] renders a Result as colored text or JSON.
//
// # Basic Usage
//
//	c := validator.NewChecker(validator.WithFs(fsys))
//	result := c.Check(validator.Dirs{Live: live, Defaults: defaults})
//	if result.HasErrors() {
//		// report and exit non-zero
//	}
package validator
