// Package bitcodec provides bit-level conversion utilities for plainsight.
//
// A Bits value is an ordered sequence of single bits stored one per byte
// (each element is 0 or 1). Conversion is most-significant-bit first:
//
//	ToBits([]byte{0xA5}) == Bits{1, 0, 1, 0, 0, 1, 0, 1}
//
// The package also owns the terminator marker that delimits an embedded
// payload and the first-occurrence search used to find it.
package bitcodec
