// Package bitcodec provides bit-level conversion utilities for plainsight.
package bitcodec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTrailingBits is returned by FromBits when the bit count is not a
// multiple of 8. Partial bytes are never silently dropped or padded.
var ErrTrailingBits = errors.New("bitcodec: bit count is not a multiple of 8")

// Bits is an ordered bit sequence, one bit (0 or 1) per element.
type Bits []byte

// String renders the sequence as a string of '0' and '1' characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		sb.WriteByte('0' + bit&1)
	}
	return sb.String()
}

// ParseBits parses a string of '0' and '1' characters.
func ParseBits(s string) (Bits, error) {
	bits := make(Bits, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bits[i] = 0
		case '1':
			bits[i] = 1
		default:
			return nil, fmt.Errorf("bitcodec: invalid bit %q at offset %d", s[i], i)
		}
	}
	return bits, nil
}

// MustParseBits is like ParseBits but panics on invalid input.
// It is intended for package-level constants.
func MustParseBits(s string) Bits {
	bits, err := ParseBits(s)
	if err != nil {
		panic(err)
	}
	return bits
}

// ToBits expands data into its bits, most significant bit first.
// The result has length 8*len(data).
func ToBits(data []byte) Bits {
	bits := make(Bits, 0, len(data)*8)
	for _, b := range data {
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, (b>>uint(shift))&1)
		}
	}
	return bits
}

// FromBits packs bits back into bytes, most significant bit first.
// It returns ErrTrailingBits if len(bits) is not a multiple of 8.
func FromBits(bits Bits) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits", ErrTrailingBits, len(bits))
	}

	data := make([]byte, len(bits)/8)
	for i := range data {
		var b byte
		for _, bit := range bits[i*8 : i*8+8] {
			b = b<<1 | bit&1
		}
		data[i] = b
	}
	return data, nil
}

// LSBs returns the least significant bit of every byte in buf, in order.
func LSBs(buf []byte) Bits {
	bits := make(Bits, len(buf))
	for i, b := range buf {
		bits[i] = b & 1
	}
	return bits
}
