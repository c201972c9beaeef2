// Package service orchestrates the plainsight encode/decode pipeline.
package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/plainsight/plainsight-go/internal/core/domain"
	"github.com/plainsight/plainsight-go/internal/core/stego"
	"github.com/plainsight/plainsight-go/internal/telemetry/logger"
	"github.com/plainsight/plainsight-go/pkg/crypto/fernet"
	"github.com/plainsight/plainsight-go/pkg/crypto/passkey"
)

// Recorder receives one observation per pipeline run.
//
// result is "ok" or the domain error code; payloadBytes is the token
// length, or -1 when no token was produced or found.
type Recorder interface {
	ObserveOperation(operation, result string, elapsed time.Duration, payloadBytes int)
}

const resultOK = "ok"

// SecretServiceConfig holds the collaborators of SecretService.
type SecretServiceConfig struct {
	// Deriver turns passkeys into keys. Defaults to passkey.Padded.
	Deriver passkey.Deriver

	// Recorder receives metrics. Nil disables recording.
	Recorder Recorder
}

// SecretService conceals and reveals messages in pixel buffers.
type SecretService struct {
	deriver  passkey.Deriver
	recorder Recorder
}

// NewSecretService creates a SecretService. A nil config uses defaults.
func NewSecretService(cfg *SecretServiceConfig) *SecretService {
	s := &SecretService{deriver: passkey.Padded{}}
	if cfg != nil {
		if cfg.Deriver != nil {
			s.deriver = cfg.Deriver
		}
		s.recorder = cfg.Recorder
	}
	return s
}

// Conceal encrypts message under pass and embeds the token into a copy of
// pixels. The returned buffer has the same length as pixels.
func (s *SecretService) Conceal(ctx context.Context, pixels []byte, message, pass string) (out []byte, err error) {
	start := time.Now()
	tokenLen := -1
	defer func() { s.observe(ctx, domain.OpConceal, start, tokenLen, err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if message == "" {
		return nil, domain.ErrEmptyArgument.WithDetails("message")
	}
	if !utf8.ValidString(message) {
		return nil, domain.ErrInvalidArgument.WithDetails("message is not valid utf-8")
	}

	key, err := s.key(pass)
	if err != nil {
		return nil, err
	}

	token, err := key.Encrypt([]byte(message))
	if err != nil {
		return nil, domain.ErrInternal.WithCause(err)
	}
	tokenLen = len(token)

	return stego.Embed(pixels, []byte(token))
}

// Reveal extracts the token embedded in pixels and decrypts it with pass.
//
// A wrong passkey or a tampered token yields domain.ErrAuthentication; a
// payload that is not a token at all yields domain.ErrFormat.
func (s *SecretService) Reveal(ctx context.Context, pixels []byte, pass string) (message string, err error) {
	start := time.Now()
	tokenLen := -1
	defer func() { s.observe(ctx, domain.OpReveal, start, tokenLen, err) }()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	key, err := s.key(pass)
	if err != nil {
		return "", err
	}

	token, err := stego.Extract(pixels)
	if err != nil {
		return "", err
	}
	tokenLen = len(token)

	plaintext, err := key.Decrypt(token)
	if err != nil {
		return "", decryptError(err)
	}
	if !utf8.Valid(plaintext) {
		return "", domain.ErrDecode.WithDetails("decrypted message is not valid utf-8")
	}
	return string(plaintext), nil
}

// Inspect reports the capacity of pixels and whether it appears to carry
// a token. It never needs a passkey.
func (s *SecretService) Inspect(ctx context.Context, pixels []byte) *domain.Inspection {
	start := time.Now()

	capacity := stego.Capacity(len(pixels))
	in := &domain.Inspection{
		PixelBytes:      len(pixels),
		CapacityBytes:   capacity,
		MaxMessageBytes: max(fernet.MaxPlaintextLen(capacity), 0),
	}

	tokenLen := -1
	if payload, err := stego.ExtractBytes(pixels); err == nil {
		in.MessageFound = true
		in.TokenBytes = len(payload)
		tokenLen = len(payload)
		if ts, err := fernet.Timestamp(string(payload)); err == nil {
			in.TokenWellFormed = true
			in.IssuedAt = &ts
		}
	}

	s.observe(ctx, domain.OpInspect, start, tokenLen, nil)
	return in
}

// key derives and parses the Fernet key for pass.
func (s *SecretService) key(pass string) (*fernet.Key, error) {
	if pass == "" {
		return nil, domain.ErrEmptyArgument.WithDetails("passkey")
	}

	encoded, err := s.deriver.Derive(pass)
	if err != nil {
		return nil, domain.ErrKeyDerivation.WithCause(err)
	}

	key, err := fernet.ParseKey(encoded)
	if err != nil {
		return nil, domain.ErrKeyDerivation.WithCause(err)
	}
	return key, nil
}

func decryptError(err error) error {
	switch {
	case errors.Is(err, fernet.ErrInvalidToken):
		return domain.ErrAuthentication.WithCause(err)
	case errors.Is(err, fernet.ErrMalformedToken):
		return domain.ErrFormat.WithCause(err)
	default:
		return domain.ErrInternal.WithCause(err)
	}
}

func (s *SecretService) observe(ctx context.Context, op string, start time.Time, tokenLen int, err error) {
	elapsed := time.Since(start)
	result := resultOK
	if err != nil {
		result = domain.GetErrorCode(err)
		if result == "" {
			result = "error"
		}
	}

	log := logger.L(ctx)
	if err != nil {
		log.Debug("operation failed", "operation", op, "code", result, "elapsed", elapsed)
	} else {
		log.Debug("operation completed", "operation", op, "token_bytes", tokenLen, "elapsed", elapsed)
	}

	if s.recorder != nil {
		s.recorder.ObserveOperation(op, result, elapsed, tokenLen)
	}
}
