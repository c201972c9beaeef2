// Package passkey turns a user passkey into a symmetric key for the
// fernet cipher.
//
// Derivers:
//
//   - Padded: the passkey is right-padded with spaces (or truncated) to
//     32 bytes and base64-url encoded. Identical passkeys always yield
//     identical keys; there is no salt and no work factor.
//   - Argon2id: salted, memory-hard derivation for deployments that do not
//     need to read images produced with the padded scheme.
//
// Both produce a 44-character base64-url string (32 bytes, padded).
package passkey
