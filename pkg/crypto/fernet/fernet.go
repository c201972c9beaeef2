// Package fernet implements versioned, authenticated symmetric tokens.
package fernet

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	// Version is the only supported token version byte.
	Version byte = 0x80

	// KeySize is the raw key length: 16 bytes signing + 16 bytes encryption.
	KeySize = 32

	timestampSize = 8
	ivSize        = aes.BlockSize
	tagSize       = sha256.Size
	headerSize    = 1 + timestampSize + ivSize

	// minTokenSize is a header, one cipher block and a tag.
	minTokenSize = headerSize + aes.BlockSize + tagSize
)

// Token errors.
var (
	// ErrInvalidKey is returned when a key is not 32 base64-url encoded bytes.
	ErrInvalidKey = errors.New("fernet: key must be 32 url-safe base64-encoded bytes")

	// ErrMalformedToken is returned when a token cannot be parsed.
	ErrMalformedToken = errors.New("fernet: malformed token")

	// ErrInvalidToken is returned when a token fails authentication.
	ErrInvalidToken = errors.New("fernet: invalid token")
)

// encoding is used for output; decoding strips padding first.
var encoding = base64.RawURLEncoding

// Key holds the signing and encryption halves of a fernet key.
type Key struct {
	signing    [16]byte
	encryption [16]byte
}

// ParseKey decodes a base64-url encoded 32-byte key.
// Both padded and unpadded encodings are accepted.
func ParseKey(s string) (*Key, error) {
	raw, err := encoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil || len(raw) != KeySize {
		return nil, ErrInvalidKey
	}
	return NewKey(raw)
}

// NewKey builds a Key from 32 raw bytes.
func NewKey(raw []byte) (*Key, error) {
	if len(raw) != KeySize {
		return nil, ErrInvalidKey
	}
	k := &Key{}
	copy(k.signing[:], raw[:16])
	copy(k.encryption[:], raw[16:])
	return k, nil
}

// GenerateKey returns a new random key, base64-url encoded with padding.
func GenerateKey() (string, error) {
	raw := make([]byte, KeySize)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("fernet: generate key: %w", err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// Encrypt seals plaintext into a token stamped with the current time.
func (k *Key) Encrypt(plaintext []byte) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("fernet: generate iv: %w", err)
	}
	return k.EncryptAt(plaintext, time.Now(), iv)
}

// EncryptAt seals plaintext with an explicit timestamp and IV.
// Reusing an IV under the same key leaks plaintext equality; callers
// outside of tests should use Encrypt.
func (k *Key) EncryptAt(plaintext []byte, now time.Time, iv []byte) (string, error) {
	if len(iv) != ivSize {
		return "", fmt.Errorf("fernet: iv must be %d bytes", ivSize)
	}

	block, err := aes.NewCipher(k.encryption[:])
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)

	buf := make([]byte, headerSize+len(padded), headerSize+len(padded)+tagSize)
	buf[0] = Version
	binary.BigEndian.PutUint64(buf[1:1+timestampSize], uint64(now.Unix()))
	copy(buf[1+timestampSize:headerSize], iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(buf[headerSize:], padded)

	buf = append(buf, k.sign(buf)...)
	return encoding.EncodeToString(buf), nil
}

// Decrypt verifies a token and returns its plaintext.
//
// It returns ErrMalformedToken when the token cannot be parsed and
// ErrInvalidToken when authentication fails. The two causes of
// authentication failure, a wrong key and a modified token, are not
// distinguished.
func (k *Key) Decrypt(token string) ([]byte, error) {
	data, err := decode(token)
	if err != nil {
		return nil, err
	}

	body, tag := data[:len(data)-tagSize], data[len(data)-tagSize:]
	if !hmac.Equal(k.sign(body), tag) {
		return nil, ErrInvalidToken
	}

	block, err := aes.NewCipher(k.encryption[:])
	if err != nil {
		return nil, err
	}

	iv := body[1+timestampSize : headerSize]
	ciphertext := body[headerSize:]
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, ok := pkcs7Unpad(plaintext, aes.BlockSize)
	if !ok {
		return nil, ErrInvalidToken
	}
	return unpadded, nil
}

// Timestamp returns the creation time recorded in a token.
// The value is read without verifying the tag.
func Timestamp(token string) (time.Time, error) {
	data, err := decode(token)
	if err != nil {
		return time.Time{}, err
	}
	sec := binary.BigEndian.Uint64(data[1 : 1+timestampSize])
	return time.Unix(int64(sec), 0).UTC(), nil
}

// EncodedLen returns the length of the token produced for a plaintext of
// n bytes.
func EncodedLen(n int) int {
	blocks := n/aes.BlockSize + 1
	return encoding.EncodedLen(headerSize + blocks*aes.BlockSize + tagSize)
}

// MaxPlaintextLen returns the largest plaintext whose token fits in
// tokenLen characters, or -1 if not even an empty plaintext fits.
func MaxPlaintextLen(tokenLen int) int {
	raw := encoding.DecodedLen(tokenLen)
	blocks := (raw - headerSize - tagSize) / aes.BlockSize
	if raw < minTokenSize || blocks < 1 {
		return -1
	}
	return blocks*aes.BlockSize - 1
}

// decode parses the token envelope and checks its structure.
func decode(token string) ([]byte, error) {
	data, err := encoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if len(data) < minTokenSize {
		return nil, fmt.Errorf("%w: %d bytes is too short", ErrMalformedToken, len(data))
	}
	if data[0] != Version {
		return nil, fmt.Errorf("%w: unsupported version 0x%02x", ErrMalformedToken, data[0])
	}
	if (len(data)-headerSize-tagSize)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not block aligned", ErrMalformedToken)
	}
	return data, nil
}

func (k *Key) sign(data []byte) []byte {
	mac := hmac.New(sha256.New, k.signing[:])
	mac.Write(data)
	return mac.Sum(nil)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}
