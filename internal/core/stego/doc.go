// Package stego hides byte payloads in the least significant bits of a
// flat pixel buffer.
//
// One payload bit is written per buffer byte, starting at index 0. The
// payload is followed by bitcodec.Terminator, which the extractor scans for
// to find where the payload ends. Only the lowest bit of each consumed byte
// changes.
//
// The functions are pure: Embed clones its input and neither function keeps
// state between calls, so buffers may be shared across goroutines as long
// as nothing else writes them.
package stego
