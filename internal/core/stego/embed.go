// Package stego provides LSB embedding and extraction.
package stego

import (
	"fmt"
	"slices"

	"github.com/plainsight/plainsight-go/internal/core/domain"
	"github.com/plainsight/plainsight-go/pkg/bitcodec"
)

// Capacity returns the largest payload in bytes that fits a buffer of n
// bytes once the terminator is accounted for.
func Capacity(n int) int {
	free := n - len(bitcodec.Terminator)
	if free < 0 {
		return 0
	}
	return free / 8
}

// RequiredBytes returns the minimum buffer length able to carry a payload
// of size bytes.
func RequiredBytes(size int) int {
	return size*8 + len(bitcodec.Terminator)
}

// Embed writes payload followed by the terminator into the LSBs of a copy
// of buf and returns the copy. buf itself is never modified.
//
// It returns domain.ErrCapacity if the payload does not fit.
func Embed(buf, payload []byte) ([]byte, error) {
	need := RequiredBytes(len(payload))
	if need > len(buf) {
		return nil, domain.ErrCapacity.WithDetails(
			fmt.Sprintf("need %d bytes of pixel data, have %d", need, len(buf)))
	}

	bits := append(bitcodec.ToBits(payload), bitcodec.Terminator...)

	out := slices.Clone(buf)
	for i, bit := range bits {
		out[i] = out[i]&0xFE | bit
	}
	return out, nil
}
