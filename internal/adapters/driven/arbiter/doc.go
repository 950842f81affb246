// Package arbiter holds the interactive driven.ConflictResolver implementations.
//
// console prompts line by line and works over pipes; tui shows both records
// side by side in a full-screen bubbletea view. Both accept only "a" or "b"
// and ask again on any other input.
package arbiter
