// Package fernet implements versioned, authenticated symmetric tokens.
//
// Token layout (before encoding):
//
//	version (1) | timestamp (8, big-endian unix seconds) | IV (16) |
//	ciphertext (AES-128-CBC, PKCS7, n*16) | HMAC-SHA256 (32)
//
// The tag covers every byte before it. The 32-byte key is split into a
// signing half (first 16 bytes) and an encryption half (last 16 bytes).
// Tokens are base64-url encoded without padding; Decrypt also accepts
// padded tokens.
//
// Security:
//
//   - Uses crypto/rand for IVs
//   - Tag comparison is constant time (hmac.Equal)
//   - A wrong key and a tampered token fail with the same error
package fernet
