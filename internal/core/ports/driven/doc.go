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
//   - GradingAPI: The remote grading service (login, analyze, download)
//   - SessionPersister: Session-lifetime persistence of the logged-in user
//   - FileSaver: Writes downloaded payloads to disk
//   - Notifier: Blocking user notifications
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Analysis and download history. Without it, charts are not
//     restored across processes.
//   - SessionWatcher: Change feed for the persisted session.
//   - ChartRenderer, ReportExporter: Local rendering of chart data.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
