// Package domain defines the core business entities for tripdata.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - City, Food, Distance: the rows persisted in the destination store
//   - Cell, Row, Sheet: the tabular view of a workbook sheet
//   - PhaseResult, ImportReport: the outcome of an import run
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
