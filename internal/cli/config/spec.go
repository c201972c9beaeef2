// Package config defines the plainsight configuration.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Log    LogSection    `koanf:"log" json:"log" yaml:"log"`
	Crypto CryptoSection `koanf:"crypto" json:"crypto" yaml:"crypto"`
	Image  ImageSection  `koanf:"image" json:"image" yaml:"image"`
	Output OutputSection `koanf:"output" json:"output" yaml:"output"`
	Server ServerSection `koanf:"server" json:"server" yaml:"server"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// CryptoSection selects and tunes the passkey derivation.
type CryptoSection struct {
	// KDF is "pad" (compatible, unsalted) or "argon2id".
	KDF string `koanf:"kdf" json:"kdf" yaml:"kdf"`

	// Salt is the base64 encoded Argon2id salt, at least 16 bytes decoded.
	Salt string `koanf:"salt" json:"salt" yaml:"salt"`

	Argon2Time      uint32 `koanf:"argon2_time" json:"argon2_time" yaml:"argon2_time"`
	Argon2MemoryKiB uint32 `koanf:"argon2_memory_kib" json:"argon2_memory_kib" yaml:"argon2_memory_kib"`
	Argon2Threads   uint8  `koanf:"argon2_threads" json:"argon2_threads" yaml:"argon2_threads"`
}

// ImageSection configures how encoded images are written.
type ImageSection struct {
	OutputFormat string `koanf:"output_format" json:"output_format" yaml:"output_format"`

	// OutputDir replaces the input's directory when set.
	OutputDir string `koanf:"output_dir" json:"output_dir" yaml:"output_dir"`
}

// OutputSection configures how results are printed.
type OutputSection struct {
	Format string `koanf:"format" json:"format" yaml:"format"` // text, json, yaml
}

// ServerSection configures the HTTP API.
type ServerSection struct {
	Addr            string        `koanf:"addr" json:"addr" yaml:"addr"`
	MaxUploadBytes  int64         `koanf:"max_upload_bytes" json:"max_upload_bytes" yaml:"max_upload_bytes"`
	RateLimit       float64       `koanf:"rate_limit" json:"rate_limit" yaml:"rate_limit"` // requests per second per client, 0 disables
	RateBurst       int           `koanf:"rate_burst" json:"rate_burst" yaml:"rate_burst"`
	TrustProxy      bool          `koanf:"trust_proxy" json:"trust_proxy" yaml:"trust_proxy"` // rate limit by X-Forwarded-For
	ReadTimeout     time.Duration `koanf:"read_timeout" json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout" json:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout"`
	TLSCertFile     string        `koanf:"tls_cert_file" json:"tls_cert_file" yaml:"tls_cert_file"`
	TLSKeyFile      string        `koanf:"tls_key_file" json:"tls_key_file" yaml:"tls_key_file"`
	TLSClientCAFile string        `koanf:"tls_client_ca_file" json:"tls_client_ca_file" yaml:"tls_client_ca_file"`
}

// TLSEnabled reports whether a certificate and key are configured.
func (s *ServerSection) TLSEnabled() bool {
	return s.TLSCertFile != "" && s.TLSKeyFile != ""
}
