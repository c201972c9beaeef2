// Package config defines the plainsight configuration.
package config

import "strings"

// Sanitize returns a copy of the config with secret fields masked, for
// logging.
func Sanitize(cfg *Config) *Config {
	sanitized := *cfg
	if sanitized.Crypto.Salt != "" {
		sanitized.Crypto.Salt = maskSecret(sanitized.Crypto.Salt)
	}
	return &sanitized
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
