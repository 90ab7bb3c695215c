package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tripdata/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/tripdata/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tripdata/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tripdata/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tripdata/internal/adapters/driving/tui/views/sheet"
	"github.com/custodia-labs/tripdata/internal/core/ports/driving"
)

// chromeHeight is the number of lines used by the title, tabs, sheet
// summary and status bar.
const chromeHeight = 6

// App is the workbook browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports    *Ports
	ctx      context.Context
	workbook string

	styles    *styles.Styles
	keymap    *keymap.KeyMap
	help      help.Model
	sheetView *sheet.View
	statusBar *status.Bar

	previews []driving.SheetPreview
	active   int
	showHelp bool
	err      error

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a browser for the workbook at path.
func NewApp(ports *Ports, path string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if path == "" {
		return nil, ErrMissingWorkbook
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:     ports,
		ctx:       context.Background(),
		workbook:  path,
		styles:    s,
		keymap:    km,
		help:      help.New(),
		sheetView: sheet.NewView(s, km),
		statusBar: status.NewBar(s, km),
		width:     80,
		height:    24,
	}, nil
}

// WithContext sets the context used to read the workbook.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init loads every sheet of the workbook.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("tripdata - "+filepath.Base(a.workbook)),
		a.loadSheets(),
	)
}

func (a *App) loadSheets() tea.Cmd {
	return func() tea.Msg {
		previews, err := a.ports.Inspector.Inspect(a.ctx, a.workbook, 0)
		return messages.SheetsLoaded{Previews: previews, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.resize()
		return a, nil

	case messages.SheetsLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.previews = msg.Previews
		a.statusBar.SetState(status.StateReady)
		return a, a.selectSheet(0)

	case messages.SheetChanged:
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Help):
		a.showHelp = !a.showHelp
		a.resize()
		return a, nil
	case key.Matches(msg, a.keymap.NextSheet):
		return a, a.selectSheet(a.active + 1)
	case key.Matches(msg, a.keymap.PrevSheet):
		return a, a.selectSheet(a.active - 1)
	}

	if len(a.previews) == 0 {
		return a, nil
	}

	var cmd tea.Cmd
	a.sheetView, cmd = a.sheetView.Update(msg)
	a.updatePosition()
	return a, cmd
}

// selectSheet activates sheet i, wrapping around at either end.
func (a *App) selectSheet(i int) tea.Cmd {
	n := len(a.previews)
	if n == 0 {
		return nil
	}
	idx := ((i % n) + n) % n
	a.active = idx
	p := a.previews[idx]
	a.sheetView.SetPreview(p)
	a.updatePosition()

	return func() tea.Msg {
		return messages.SheetChanged{Index: idx, Name: p.Name}
	}
}

func (a *App) updatePosition() {
	if len(a.previews) == 0 {
		return
	}
	a.statusBar.SetPosition(a.sheetView.Cursor(), a.previews[a.active].RowCount)
}

func (a *App) resize() {
	a.statusBar.SetWidth(a.width)
	a.help.Width = a.width

	height := a.height - chromeHeight
	if a.showHelp {
		height -= len(a.keymap.FullHelp()[0])
	}
	a.sheetView.SetDimensions(a.width, max(height, 3))
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("tripdata · " + filepath.Base(a.workbook)))
	b.WriteString("\n")

	if a.err != nil {
		b.WriteString("\n")
		b.WriteString(a.styles.Error.Render(a.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(a.statusBar.View())
		return b.String()
	}

	b.WriteString(a.renderTabs())
	b.WriteString("\n")

	if len(a.previews) > 0 {
		p := a.previews[a.active]
		b.WriteString(a.styles.Muted.Render(
			fmt.Sprintf("%d rows × %d columns", p.RowCount, len(p.Columns))))
		b.WriteString("\n")
		b.WriteString(a.sheetView.View())
		b.WriteString("\n")
	}

	if a.showHelp {
		b.WriteString(a.styles.Help.Render(a.help.FullHelpView(a.keymap.FullHelp())))
		b.WriteString("\n")
	}

	b.WriteString(a.statusBar.View())
	return b.String()
}

func (a *App) renderTabs() string {
	if len(a.previews) == 0 {
		return a.styles.Muted.Render("(no sheets)")
	}

	tabs := make([]string, len(a.previews))
	for i, p := range a.previews {
		if i == a.active {
			tabs[i] = a.styles.ActiveTab.Render(p.Name)
		} else {
			tabs[i] = a.styles.Tab.Render(p.Name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// Active returns the index of the displayed sheet.
func (a *App) Active() int {
	return a.active
}

// Err returns the load error, if any.
func (a *App) Err() error {
	return a.err
}
