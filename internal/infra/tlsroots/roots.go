package tlsroots

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/plainsight/plainsight-go/internal/telemetry/logger"
)

// ErrNoCertsFound is returned when a PEM input holds no certificate.
var ErrNoCertsFound = errors.New("tlsroots: no certificates found in PEM data")

// ParseCertsPEM returns every CERTIFICATE block in pemData. Blocks of
// other types, such as private keys bundled in the same file, are skipped.
func ParseCertsPEM(pemData []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	for len(pemData) > 0 {
		var block *pem.Block
		block, pemData = pem.Decode(pemData)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("tlsroots: parse certificate: %w", err)
		}
		certs = append(certs, cert)
	}

	if len(certs) == 0 {
		return nil, ErrNoCertsFound
	}
	return certs, nil
}

// LoadCAPool reads a PEM bundle into a pool that contains only its
// certificates. System roots are never trusted for client authentication.
func LoadCAPool(path string) (*x509.CertPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tlsroots: read CA file %s: %w", path, err)
	}
	certs, err := ParseCertsPEM(data)
	if err != nil {
		return nil, fmt.Errorf("tlsroots: %s: %w", path, err)
	}

	pool := x509.NewCertPool()
	for _, c := range certs {
		pool.AddCert(c)
	}
	return pool, nil
}

// ServerOptions locates the key pair and optional client CA bundle.
type ServerOptions struct {
	CertFile string
	KeyFile  string

	// ClientCAFile enables mutual TLS when set.
	ClientCAFile string

	Logger logger.Logger
}

// NewServerConfig loads the key pair and returns a TLS 1.2+ server config
// whose certificate follows the files on disk. The caller must start the
// returned Watcher for reloads to happen, and stop it on shutdown.
func NewServerConfig(opts ServerOptions) (*tls.Config, *Watcher, error) {
	var wopts []WatcherOption
	if opts.Logger != nil {
		wopts = append(wopts, WithLogger(opts.Logger))
	}
	w, err := NewWatcher(opts.CertFile, opts.KeyFile, wopts...)
	if err != nil {
		return nil, nil, err
	}

	cfg := &tls.Config{
		GetCertificate: w.GetCertificate,
		MinVersion:     tls.VersionTLS12,
	}

	if opts.ClientCAFile != "" {
		pool, err := LoadCAPool(opts.ClientCAFile)
		if err != nil {
			w.Stop()
			return nil, nil, err
		}
		cfg.ClientCAs = pool
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return cfg, w, nil
}
