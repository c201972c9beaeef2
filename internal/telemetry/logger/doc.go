// Package logger provides structured logging for plainsight.
//
// It wraps log/slog and adds:
//
//   - JSON (default) and text output
//   - a process-wide level that can change at runtime (SetLevel)
//   - redaction of passkeys, messages, and Fernet tokens before they
//     reach any handler
//   - context helpers carrying the request ID and operation name
package logger
