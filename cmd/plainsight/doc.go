// Package main provides the entry point for plainsight.
//
// plainsight hides passkey-encrypted text in the least significant bits
// of an image. It runs single commands (encode, decode, inspect), asks
// for a mode when started without one, and can serve the same operations
// over HTTP.
package main
