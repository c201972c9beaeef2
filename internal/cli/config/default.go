// Package config defines the plainsight configuration.
package config

import (
	"time"

	"github.com/plainsight/plainsight-go/pkg/crypto/passkey"
)

// Default configuration values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	KDFPad      = "pad"
	KDFArgon2id = "argon2id"

	DefaultOutputFormat = "text"
	DefaultImageFormat  = "png"

	DefaultServerAddr      = "127.0.0.1:8780"
	DefaultMaxUploadBytes  = 32 << 20
	DefaultRateLimit       = 5
	DefaultRateBurst       = 10
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Crypto: CryptoSection{
			KDF:             KDFPad,
			Argon2Time:      passkey.DefaultArgon2Time,
			Argon2MemoryKiB: passkey.DefaultArgon2Memory,
			Argon2Threads:   passkey.DefaultArgon2Threads,
		},
		Image: ImageSection{
			OutputFormat: DefaultImageFormat,
		},
		Output: OutputSection{
			Format: DefaultOutputFormat,
		},
		Server: ServerSection{
			Addr:            DefaultServerAddr,
			MaxUploadBytes:  DefaultMaxUploadBytes,
			RateLimit:       DefaultRateLimit,
			RateBurst:       DefaultRateBurst,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
	}
}
