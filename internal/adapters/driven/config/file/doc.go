// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to, or read data from, the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - ManifestLoader: TOML or JSON case import files
//   - Watcher: re-imports a manifest when it changes on disk
package file
