// Package passkey turns a user passkey into a symmetric key.
package passkey

import (
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the raw key length in bytes.
	KeySize = 32

	// MinSaltLength is the shortest salt accepted by Argon2id.
	MinSaltLength = 16
)

// Argon2id defaults, matching the snapshot encryption parameters.
const (
	DefaultArgon2Time    = 3
	DefaultArgon2Memory  = 64 * 1024
	DefaultArgon2Threads = 4
)

// ErrSaltTooShort is returned when an Argon2id salt is shorter than MinSaltLength.
var ErrSaltTooShort = errors.New("passkey: salt too short (minimum 16 bytes)")

// Deriver derives a base64-url encoded key from a passkey.
type Deriver interface {
	Derive(passkey string) (string, error)
}

// Derive normalizes passkey to exactly KeySize bytes and returns it
// base64-url encoded. Shorter passkeys are right-padded with spaces; longer
// ones keep their first KeySize bytes.
func Derive(passkey string) string {
	return base64.URLEncoding.EncodeToString(Normalize(passkey))
}

// Normalize pads or truncates passkey to exactly KeySize bytes.
func Normalize(passkey string) []byte {
	if len(passkey) < KeySize {
		passkey += strings.Repeat(" ", KeySize-len(passkey))
	}
	return []byte(passkey[:KeySize])
}

// Padded is the Deriver implemented by Derive. It never fails.
type Padded struct{}

// Derive implements Deriver.
func (Padded) Derive(passkey string) (string, error) {
	return Derive(passkey), nil
}

// Argon2id derives keys with Argon2id over the raw passkey and a fixed salt.
type Argon2id struct {
	Salt    []byte
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// NewArgon2id returns an Argon2id deriver with default cost parameters.
func NewArgon2id(salt []byte) (*Argon2id, error) {
	if len(salt) < MinSaltLength {
		return nil, ErrSaltTooShort
	}
	return &Argon2id{
		Salt:    salt,
		Time:    DefaultArgon2Time,
		Memory:  DefaultArgon2Memory,
		Threads: DefaultArgon2Threads,
	}, nil
}

// Derive implements Deriver.
func (a *Argon2id) Derive(passkey string) (string, error) {
	if len(a.Salt) < MinSaltLength {
		return "", ErrSaltTooShort
	}

	t, m, p := a.Time, a.Memory, a.Threads
	if t == 0 {
		t = DefaultArgon2Time
	}
	if m == 0 {
		m = DefaultArgon2Memory
	}
	if p == 0 {
		p = DefaultArgon2Threads
	}

	key := argon2.IDKey([]byte(passkey), a.Salt, t, m, p, KeySize)
	return base64.URLEncoding.EncodeToString(key), nil
}
