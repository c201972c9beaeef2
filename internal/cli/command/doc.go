// Package command provides CLI command definitions for plainsight.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, interactive mode selection
//   - encode.go: Hide a message in an image
//   - decode.go: Recover a message from an image
//   - inspect.go: Report capacity and marker presence
//   - serve.go: HTTP API server
//   - version.go: Build information
//
// Commands follow a consistent pattern of parsing flags, prompting for
// anything missing, calling the secret service and formatting output.
package command
