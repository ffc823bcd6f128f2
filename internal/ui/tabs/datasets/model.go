// Package datasets provides the dataset list tab with a preview of the
// selected dataset.
package datasets

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/forge-insights-tui/internal/app"
	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/ui/components"
	"github.com/j-veylop/forge-insights-tui/internal/ui/styles"
)

// keyMap defines the key bindings specific to the datasets tab.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Analyze key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous dataset"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next dataset"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "analyze"),
		),
	}
}

// Model represents the datasets tab state.
type Model struct {
	state   *app.State
	table   table.Model
	spinner components.LoadingSpinner
	keys    keyMap
	width   int
	height  int

	// verticals maps table rows to dataset verticals.
	verticals []string
}

// New creates a new datasets model.
func New(state *app.State) *Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	return &Model{
		state:   state,
		table:   t,
		spinner: components.NewSpinner("Scanning datasets..."),
		keys:    defaultKeyMap(),
	}
}

// columns sizes the table columns for a card of the given width. Each cell
// is padded by one space on both sides.
func columns(width int) []table.Column {
	vertical := max(width-4-12-(8+10+14+16+10), 12)
	return []table.Column{
		{Title: "Vertical", Width: vertical},
		{Title: "Format", Width: 8},
		{Title: "Size", Width: 10},
		{Title: "Modified", Width: 14},
		{Title: "Strategies", Width: 16},
		{Title: "Insights", Width: 10},
	}
}

// Init initializes the datasets tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages for the datasets tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if m.state.IsInitialLoading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case app.DatasetsLoadedMsg, app.AnalysisLoadedMsg:
		m.syncRows()
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	m.syncRows()

	if key.Matches(msg, m.keys.Analyze) {
		vertical := m.cursorVertical()
		if vertical == "" {
			return nil
		}
		return func() tea.Msg { return app.AnalyzeMsg{Vertical: vertical} }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	if vertical := m.cursorVertical(); vertical != "" {
		m.state.SelectVertical(vertical)
	}
	return cmd
}

// syncRows rebuilds the table from the shared state and keeps the cursor on
// the selected vertical.
func (m *Model) syncRows() {
	list := m.state.GetDatasets()
	selected := m.state.GetSelectedVertical()

	rows := make([]table.Row, 0, len(list))
	m.verticals = m.verticals[:0]
	cursor := 0
	for i, ds := range list {
		rows = append(rows, m.row(ds))
		m.verticals = append(m.verticals, ds.Vertical)
		if ds.Vertical == selected {
			cursor = i
		}
	}
	m.table.SetRows(rows)
	if len(rows) > 0 {
		m.table.SetCursor(cursor)
	}
}

func (m *Model) row(ds models.Dataset) table.Row {
	strategies := "no strategies"
	if ds.Supported {
		strategies = "available"
	}
	insights := "-"
	if a := m.state.GetAnalysis(ds.Vertical); a != nil {
		insights = fmt.Sprintf("%d", len(a.Results))
	}
	modified := "-"
	if !ds.ModTime.IsZero() {
		modified = humanize.Time(ds.ModTime)
	}
	return table.Row{
		ds.DisplayName(),
		ds.Format.String(),
		humanize.Bytes(uint64(max(ds.Size, 0))),
		modified,
		strategies,
		insights,
	}
}

func (m *Model) cursorVertical() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.verticals) {
		return ""
	}
	return m.verticals[i]
}

// SetSize sets the available size for the datasets tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	cardWidth := max(width-6, 60)
	m.table.SetColumns(columns(cardWidth))
	m.table.SetHeight(tableHeight(height))
}

// tableHeight leaves room for the title and preview below the list.
func tableHeight(height int) int {
	return min(max(height/3, 4), 12)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Analyze}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.Analyze},
	}
}
