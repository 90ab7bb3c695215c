package domain

import (
	"errors"
	"time"
)

// Phase identifies one stage of an import run.
type Phase string

// Import phases in execution order.
const (
	PhaseCities    Phase = "cities"
	PhaseFoods     Phase = "foods"
	PhaseDistances Phase = "distances"
)

// PhaseResult is the outcome of importing one sheet (or, for cities,
// the union of the distance sheets).
type PhaseResult struct {
	Phase Phase

	// Sheet is the sheet the phase read. Empty for the cities phase,
	// which reads both distance sheets.
	Sheet string

	// Imported counts rows written to the store, including rows the store
	// already held.
	Imported int

	// Duplicates counts rows the store already held and left unchanged.
	Duplicates int

	// Skipped counts rows dropped because a city could not be resolved.
	Skipped int

	// Err is nil on success. ErrMissingSheet is recorded but not fatal.
	Err error
}

// Fatal reports whether the phase failed in a way that stops the run.
func (r PhaseResult) Fatal() bool {
	return r.Err != nil && !errors.Is(r.Err, ErrMissingSheet)
}

// ImportReport aggregates the phase results of one import run.
type ImportReport struct {
	RunID      string
	Workbook   string
	Sheets     []string
	Phases     []PhaseResult
	StartedAt  time.Time
	FinishedAt time.Time
}

// Success reports whether no phase failed fatally.
func (r *ImportReport) Success() bool {
	return r.Err() == nil
}

// Err returns the first fatal phase error, or nil.
func (r *ImportReport) Err() error {
	for _, p := range r.Phases {
		if p.Fatal() {
			return p.Err
		}
	}
	return nil
}

// Total sums the imported count of every phase of kind p.
func (r *ImportReport) Total(p Phase) int {
	total := 0
	for _, res := range r.Phases {
		if res.Phase == p {
			total += res.Imported
		}
	}
	return total
}

// Add appends a phase result.
func (r *ImportReport) Add(res PhaseResult) {
	r.Phases = append(r.Phases, res)
}
