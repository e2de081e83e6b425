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
//   - KeywordStore: Keyword list persistence (SQLite, Redis, memory)
//   - ConfigStore: Application configuration
//   - DocumentParser: Reads documents into a node tree (HTML)
//   - DocumentRenderer: Writes a node tree (HTML, ANSI, plain text)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ChangeNotifier: Pushes keyword list changes. Without it, watch mode is disabled.
//   - HighlightMetrics: Records pass counts. Without it, nothing is recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or driving package
package driven
