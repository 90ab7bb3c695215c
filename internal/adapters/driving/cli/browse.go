package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/tripdata/internal/adapters/driving/tui"
)

// errNotTerminal is returned when browse is run without a terminal.
var errNotTerminal = errors.New("browse needs an interactive terminal; use inspect instead")

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

var browseCmd = &cobra.Command{
	Use:   "browse <workbook>",
	Short: "Browse a workbook in the terminal",
	Long: `Open the workbook in an interactive viewer with one tab per sheet.

Controls:
  tab, →/l      - Next sheet
  shift+tab, ←/h - Previous sheet
  ↑/k, ↓/j      - Move between rows
  pgup, pgdown  - Page through rows
  ?             - Toggle help
  q             - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return errNotTerminal
	}

	svc, err := getServices()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(&tui.Ports{Inspector: svc.Inspector}, args[0])
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return app.Err()
}
