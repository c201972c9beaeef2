// Package domain defines the core domain types for plainsight.
//
// Domain types are plain values without IO dependencies or framework
// coupling. This package contains:
//
//   - Errors: coded error taxonomy shared by the CLI and HTTP surfaces
//   - Secret: request and result values for concealing and revealing
//     messages in images
package domain
