// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ArchiveStore: Per-part and consolidated archive persistence
//   - ConfigStore: Application configuration
//   - ConflictResolver: Operator arbitration of hard merge conflicts
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TitleLookup: Capture test ID to part title. Without it every ID is unknown.
//   - RunJournal: Run and decision history. Without it decisions are only logged.
//   - Exporter: Registered per format; unknown formats are rejected.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or exporter package
package driven
