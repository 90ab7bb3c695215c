package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tripdata/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driving"
)

func runImport(cmd *cobra.Command, args []string) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	if svc.Importer == nil {
		return errors.New("import service not configured")
	}

	path := args[0]
	if opts.DryRun {
		cmd.Println("Dry run: nothing will be written to the database.")
	} else {
		cmd.Printf("Database: %s\n", svc.Database.Target())
	}

	s := styles.DefaultStyles()
	report, err := svc.Importer.Import(cmd.Context(), path, &progressPrinter{cmd: cmd, styles: s})
	if errors.Is(err, domain.ErrFileNotFound) {
		cmd.Println(s.Error.Render(fmt.Sprintf("Error: Excel file '%s' not found.", path)))
		return fmt.Errorf("%w: %w", ErrReported, err)
	}
	if err != nil {
		cmd.Println(s.Error.Render(fmt.Sprintf("Import failed: %v", err)))
		return fmt.Errorf("%w: %w", ErrReported, err)
	}

	cmd.Println(s.Success.Render(fmt.Sprintf("Data import complete! Total distances: %d", report.Total(domain.PhaseDistances))))
	return nil
}

// progressPrinter writes import progress to the command output.
type progressPrinter struct {
	cmd               *cobra.Command
	styles            *styles.Styles
	distancesAnnounce bool
}

// Ensure progressPrinter implements the interface.
var _ driving.ImportObserver = (*progressPrinter)(nil)

func (p *progressPrinter) WorkbookOpened(_ string, sheets []string) {
	p.cmd.Printf("Available sheets: %v\n", sheets)
}

func (p *progressPrinter) PhaseStarted(phase domain.Phase, _ string) {
	switch phase {
	case domain.PhaseCities:
		p.cmd.Println("Importing cities...")
	case domain.PhaseFoods:
		p.cmd.Println("Importing foods...")
	case domain.PhaseDistances:
		if !p.distancesAnnounce {
			p.cmd.Println("Importing city distances...")
			p.distancesAnnounce = true
		}
	}
}

func (p *progressPrinter) PhaseFinished(r domain.PhaseResult) {
	if errors.Is(r.Err, domain.ErrMissingSheet) {
		p.cmd.Println(p.styles.Error.Render(fmt.Sprintf("Error: Worksheet named '%s' not found.", r.Sheet)))
		return
	}
	if r.Err != nil {
		return
	}

	switch r.Phase {
	case domain.PhaseCities:
		p.cmd.Printf("Imported %d unique cities.\n", r.Imported)
	case domain.PhaseFoods:
		p.cmd.Printf("Imported %d food items.\n", r.Imported)
		if r.Skipped > 0 {
			p.warn("Skipped %d food items with unknown cities.", r.Skipped)
		}
	case domain.PhaseDistances:
		p.cmd.Printf("Imported %d distances from '%s' sheet.\n", r.Imported, r.Sheet)
		if r.Skipped > 0 {
			p.warn("Skipped %d distances with unknown cities.", r.Skipped)
		}
	}
}

func (p *progressPrinter) warn(format string, args ...any) {
	p.cmd.Println(p.styles.Warning.Render(fmt.Sprintf(format, args...)))
}
