// Package config defines the plainsight configuration.
//
//   - spec.go: Config struct and its sections
//   - default.go: default values
//   - loader.go: layered loading through confloader
//   - verify.go: validation
//   - sanitize.go: masking secrets before the config is logged or printed
//
// The same Config serves every command; serve additionally reads the
// server section.
package config
