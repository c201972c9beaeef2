// Package bitcodec provides bit-level conversion utilities for plainsight.
package bitcodec

import "bytes"

// TerminatorPattern marks the end of an embedded payload.
//
// For a marker of N bits and a carrier of C bits, the chance of the pattern
// appearing in untouched image data is about 1 - (1 - 2^-N)^(C-N+1).
// Images written by other implementations of the scheme use the same
// literal, so it must never change.
const TerminatorPattern = "11111111111111101111111111111110"

// Terminator is TerminatorPattern as a bit sequence.
var Terminator = MustParseBits(TerminatorPattern)

// FindMarker returns the index of the first occurrence of marker in bits,
// or -1 if it does not occur. An empty marker matches at index 0.
func FindMarker(bits, marker Bits) int {
	return bytes.Index(bits, marker)
}
