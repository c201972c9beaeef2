// Package service orchestrates the plainsight encode/decode pipeline.
//
// SecretService ties key derivation, the Fernet cipher and LSB embedding
// together and translates library errors into domain errors. It keeps no
// per-call state and is safe for concurrent use.
//
// Pixel buffers come from and go to the caller; loading and saving images
// is not this package's concern.
package service
