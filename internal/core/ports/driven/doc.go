// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - WorkbookOpener / Workbook: Reads named sheets from a spreadsheet file
//   - StoreOpener / Store / Tx: Destination store connection and units of work
//   - CityRepository, FoodRepository, DistanceRepository: Table access within a Tx
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
