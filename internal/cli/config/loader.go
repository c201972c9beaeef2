// Package config defines the plainsight configuration.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/plainsight/plainsight-go/internal/infra/confloader"
	"github.com/plainsight/plainsight-go/pkg/crypto/passkey"
)

// EnvPasskey supplies the passkey. It shares the configuration prefix but
// is never part of the configuration.
const EnvPasskey = confloader.DefaultEnvPrefix + "PASSKEY"

// DefaultConfigPath returns the per-user configuration file path.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "plainsight", "config.yaml")
}

// ResolvePath returns path, or DefaultConfigPath when path is empty and
// the default file exists. It returns "" when there is no file to read.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	path = DefaultConfigPath()
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return path
}

// Load builds the configuration from defaults, the file at path, the
// environment and overrides, then verifies it.
//
// An empty path falls back to DefaultConfigPath, which is skipped when it
// does not exist. An explicit path must exist.
func Load(path string, overrides map[string]any) (*Config, error) {
	path = ResolvePath(path)

	cfg := Default()
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
		confloader.WithEnvIgnore(EnvPasskey),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Deriver builds the passkey deriver selected by the crypto section.
func (c *CryptoSection) Deriver() (passkey.Deriver, error) {
	switch c.KDF {
	case KDFPad, "":
		return passkey.Padded{}, nil
	case KDFArgon2id:
		salt, err := base64.StdEncoding.DecodeString(c.Salt)
		if err != nil {
			return nil, fmt.Errorf("crypto.salt: %w", err)
		}
		d, err := passkey.NewArgon2id(salt)
		if err != nil {
			return nil, fmt.Errorf("crypto.salt: %w", err)
		}
		if c.Argon2Time > 0 {
			d.Time = c.Argon2Time
		}
		if c.Argon2MemoryKiB > 0 {
			d.Memory = c.Argon2MemoryKiB
		}
		if c.Argon2Threads > 0 {
			d.Threads = c.Argon2Threads
		}
		return d, nil
	default:
		return nil, fmt.Errorf("crypto.kdf: unknown value %q", c.KDF)
	}
}
