// Package domain defines the core domain types for plainsight.
package domain

import "time"

// Operation names shared by logs, metrics and the HTTP routes.
const (
	OpConceal = "conceal"
	OpReveal  = "reveal"
	OpInspect = "inspect"
)

// Inspection describes what a carrier holds, without decrypting it.
type Inspection struct {
	// Image geometry, filled in by the caller that decoded the image.
	Format   string `json:"format,omitempty" yaml:"format,omitempty"`
	Width    int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height   int    `json:"height,omitempty" yaml:"height,omitempty"`
	Channels int    `json:"channels,omitempty" yaml:"channels,omitempty"`

	// PixelBytes is the length of the flat pixel buffer.
	PixelBytes int `json:"pixel_bytes" yaml:"pixel_bytes"`

	// CapacityBytes is the largest token the buffer can carry.
	CapacityBytes int `json:"capacity_bytes" yaml:"capacity_bytes"`

	// MaxMessageBytes is the largest plaintext whose token fits, or 0.
	MaxMessageBytes int `json:"max_message_bytes" yaml:"max_message_bytes"`

	// MessageFound reports whether a terminator occurs in the LSB stream.
	MessageFound bool `json:"message_found" yaml:"message_found"`

	// TokenBytes is the length of the embedded payload.
	TokenBytes int `json:"token_bytes,omitempty" yaml:"token_bytes,omitempty"`

	// TokenWellFormed reports whether the payload parses as a token. It
	// says nothing about which passkey produced it.
	TokenWellFormed bool `json:"token_well_formed" yaml:"token_well_formed"`

	// IssuedAt is the unauthenticated creation time stored in the token.
	IssuedAt *time.Time `json:"issued_at,omitempty" yaml:"issued_at,omitempty"`
}
