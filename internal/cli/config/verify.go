// Package config defines the plainsight configuration.
package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/plainsight/plainsight-go/internal/imageio"
	"github.com/plainsight/plainsight-go/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	if _, err := cfg.Crypto.Deriver(); err != nil {
		return err
	}
	if err := verifyOutput(cfg); err != nil {
		return err
	}
	return verifyServer(&cfg.Server)
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("log.level: unknown level %q", cfg.Level)
	}
	switch cfg.Format {
	case "json", "text", "console":
		return nil
	}
	return fmt.Errorf("log.format: unknown format %q", cfg.Format)
}

func verifyOutput(cfg *Config) error {
	switch cfg.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format: unknown format %q", cfg.Output.Format)
	}
	if !imageio.Format(cfg.Image.OutputFormat).Lossless() {
		return fmt.Errorf("image.output_format: %q is not a lossless format (png, bmp)", cfg.Image.OutputFormat)
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return fmt.Errorf("server.addr: %w", err)
	}
	if cfg.MaxUploadBytes <= 0 {
		return errors.New("server.max_upload_bytes must be positive")
	}
	if cfg.RateLimit < 0 {
		return errors.New("server.rate_limit must not be negative")
	}
	if cfg.RateLimit > 0 && cfg.RateBurst < 1 {
		return errors.New("server.rate_burst must be at least 1 when rate limiting is enabled")
	}
	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return errors.New("server.tls_cert_file and server.tls_key_file must be set together")
	}
	if cfg.TLSClientCAFile != "" && !cfg.TLSEnabled() {
		return errors.New("server.tls_client_ca_file requires server.tls_cert_file")
	}
	return nil
}
