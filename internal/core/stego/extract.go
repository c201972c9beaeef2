// Package stego provides LSB embedding and extraction.
package stego

import (
	"errors"
	"unicode/utf8"

	"github.com/plainsight/plainsight-go/internal/core/domain"
	"github.com/plainsight/plainsight-go/pkg/bitcodec"
)

// Extract recovers a text payload previously written by Embed.
//
// Errors:
//   - domain.ErrNoMessageFound: the terminator does not occur in the LSB stream
//   - domain.ErrDecode: the payload is not whole bytes or not valid UTF-8
func Extract(buf []byte) (string, error) {
	payload, err := ExtractBytes(buf)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(payload) {
		return "", domain.ErrDecode
	}
	return string(payload), nil
}

// ExtractBytes is like Extract but returns the raw payload without
// checking that it is text.
func ExtractBytes(buf []byte) ([]byte, error) {
	bits := bitcodec.LSBs(buf)

	end := bitcodec.FindMarker(bits, bitcodec.Terminator)
	if end < 0 {
		return nil, domain.ErrNoMessageFound
	}

	payload, err := bitcodec.FromBits(bits[:end])
	if err != nil {
		if errors.Is(err, bitcodec.ErrTrailingBits) {
			return nil, domain.ErrDecode.WithCause(err)
		}
		return nil, err
	}
	return payload, nil
}
