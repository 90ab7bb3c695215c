// Package services implements the driving port interfaces.
// Services hold the import logic and orchestrate calls to the
// driven ports (workbook reader and destination store).
//
// Each import phase runs in its own store transaction and reports a
// domain.PhaseResult instead of returning early on row-level problems.
package services
