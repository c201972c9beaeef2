// Package confloader loads layered configuration with koanf.
//
// Sources, lowest priority first:
//
//  1. defaults already present in the target struct
//  2. a YAML configuration file
//  3. environment variables (PLAINSIGHT_<SECTION>_<KEY>)
//  4. explicit overrides, usually command-line flags (LoadMap)
//
// Watcher reports changes to the configuration file so long-running
// commands can re-read it.
package confloader
