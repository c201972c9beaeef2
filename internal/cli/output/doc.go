// Package output renders command results for the plainsight CLI.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: key/value and columnar tables for text output
//   - json.go: JSON output formatting
//   - yaml.go: YAML output formatting
//   - spinner.go: progress animation for long operations
//
// Text output is meant for people. JSON and YAML are stable for scripts:
// field names come from the json and yaml struct tags of the result types.
package output
