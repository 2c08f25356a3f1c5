// Package cmd holds build metadata for the wlog binary, set via ldflags:
//
//	go build -ldflags "-X github.com/thoreinstein/wlog/cmd.Version=v0.3.0" ./cmd/wlog
package cmd

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
