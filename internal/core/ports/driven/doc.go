// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - CaseStore: Case persistence
//   - DocumentStore: Document persistence and the read flag
//   - AnnotationStore: Comment persistence
//   - ViewStateStore: Per-case list state (scroll, last read, filters)
//   - ConfigStore: User settings
//   - ManifestLoader: Parses case import files (TOML or JSON)
//   - Watcher: Reports changes to an import file
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
