// Package logger provides structured logging for plainsight.
package logger

import (
	"log/slog"
	"strings"
)

// TokenPrefix is how every base64-url encoded Fernet token begins
// (version byte 0x80 followed by the high timestamp bytes).
const TokenPrefix = "gAAAAA"

// Attribute keys containing any of these are fully redacted.
var sensitiveKeyPatterns = []string{
	"passkey",
	"password",
	"secret",
	"token",
	"key",
	"message",
	"plaintext",
	"credential",
}

const redactedValue = "***REDACTED***"

func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		v := a.Value.String()
		if strings.HasPrefix(v, TokenPrefix) {
			return slog.String(a.Key, maskValue(v, TokenPrefix))
		}
		if v != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// maskValue keeps prefix, the next three and the last three characters.
func maskValue(value, prefix string) string {
	body := value[len(prefix):]
	if len(body) <= 6 {
		return prefix + "***"
	}
	return prefix + body[:3] + "..." + body[len(body)-3:]
}

// RedactString masks value if it looks like a Fernet token.
func RedactString(value string) string {
	if IsSensitiveValue(value) {
		return maskValue(value, TokenPrefix)
	}
	return value
}

// IsSensitiveKey reports whether a key name suggests secret content.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(k, pattern) {
			return true
		}
	}
	return false
}

// IsSensitiveValue reports whether value looks like a Fernet token.
func IsSensitiveValue(value string) bool {
	return strings.HasPrefix(value, TokenPrefix)
}
