// Package paths resolves the wlog install home and the directory layout
// beneath it.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. The default install home is:
//
//	<XDG config home>/wlog       // ~/.config/wlog on Linux
//
// # Layout
//
// Relative to an install home:
//
//	| Directory                      | Contents                         |
//	|--------------------------------|----------------------------------|
//	| configs/                       | live config files (*.yaml)       |
//	| configs/factory_resets/        | shipped factory defaults         |
//
// The home is resolved once by the CLI and passed down; nothing in this
// package looks at the working directory.
package paths
