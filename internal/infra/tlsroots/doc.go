// Package tlsroots builds the TLS configuration of the HTTP API.
//
//   - roots.go: client CA pools and the server tls.Config
//   - watcher.go: certificate hot-reload via fsnotify
//
// A renewed certificate is picked up without restarting the server:
// the tls.Config asks the Watcher for the current key pair on every
// handshake.
package tlsroots
