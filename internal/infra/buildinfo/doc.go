// Package buildinfo exposes build-time information for plainsight.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/plainsight/plainsight-go/internal/infra/buildinfo.Version=v1.0.0"
//
// GoVersion and, when not injected, Commit fall back to what the Go
// toolchain embeds in the binary.
package buildinfo
