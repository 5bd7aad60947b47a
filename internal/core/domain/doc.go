// Package domain defines the core business entities for etis.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Credentials: username and password for the grading service
//   - Session: an authenticated user with available terms and a selected term
//   - ChartSeries: paired label/value sequence backing one chart
//   - AnalysisResult: the transient payload of one analysis call
//   - FileType: the closed set of exports the service can produce
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
