package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tripdata/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driving"
)

var inspectRows int

var inspectCmd = &cobra.Command{
	Use:   "inspect <workbook>",
	Short: "List the sheets of a workbook with sample rows",
	Long: `Prints every sheet in the workbook with its row count, column names and
the first few rows. Nothing is written to the database.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectRows, "rows", "n", 3, "sample rows per sheet (0 for all)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	if svc.Inspector == nil {
		return errors.New("inspect service not configured")
	}

	path := args[0]
	previews, err := svc.Inspector.Inspect(cmd.Context(), path, inspectRows)
	if errors.Is(err, domain.ErrFileNotFound) {
		cmd.Printf("File not found: %s\n", path)
		return fmt.Errorf("%w: %w", ErrReported, err)
	}
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	names := make([]string, len(previews))
	for i, p := range previews {
		names[i] = p.Name
	}
	cmd.Printf("Excel file: %s\n", path)
	cmd.Printf("Available sheets: %v\n", names)

	s := styles.DefaultStyles()
	for _, p := range previews {
		cmd.Println()
		cmd.Printf("Sheet: '%s'\n", p.Name)
		cmd.Printf("   Rows: %d\n", p.RowCount)
		cmd.Printf("   Columns: [%s]\n", strings.Join(p.Columns, ", "))
		if len(p.Rows) == 0 {
			continue
		}
		cmd.Println("   Sample data:")
		cmd.Println(renderPreview(s, p))
	}
	return nil
}

// renderPreview draws the sample rows of a sheet as a bordered table.
func renderPreview(s *styles.Styles, p driving.SheetPreview) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(s.Theme().Border)).
		Headers(p.Columns...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			if row >= 0 && row < len(p.Rows) && col < len(p.Rows[row]) && p.Rows[row][col] == "" {
				return s.Null
			}
			return s.Cell
		})

	for _, row := range p.Rows {
		t.Row(row...)
	}
	return t.Render()
}
