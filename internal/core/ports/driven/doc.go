// Package driven defines the interfaces that core calls OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - BlockStore: durable ordered block persistence; the source of truth
//     for document order and heading levels
//   - ProjectStore: project rows
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// The editing surfaces can be nil (headless operation, e.g. export and the
// MCP server); the coordinator skips pushes to absent surfaces:
//
//   - EditorSurface: the structured outline surface
//   - SourceSurface: the plain-text source surface
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter package
package driven
