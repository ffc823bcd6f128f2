// Package insights provides the tab that shows every strategy outcome of the
// selected dataset.
package insights

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/forge-insights-tui/internal/app"
	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/ui/components"
)

type animationTickMsg time.Time

func animationTickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*40, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// keyMap defines the key bindings specific to the insights tab.
type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Analyze key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next insight"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev insight"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "re-analyze"),
		),
	}
}

// Model represents the insights tab state.
type Model struct {
	state    *app.State
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int

	// rendered is the analysis currently laid out in the viewport.
	rendered      *models.Analysis
	renderedWidth int
	// offsets holds the first content line of each insight card.
	offsets []int

	animationFrame int
}

// New creates a new insights model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		spinner:  components.NewSpinner("Analyzing..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the insights tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages for the insights tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.AnalyzeMsg:
		if ds, ok := m.state.SelectedDataset(); ok {
			m.spinner.SetDataset(ds)
		}
		cmds = append(cmds, m.spinner.Tick(), animationTickCmd())

	case animationTickMsg:
		m.animationFrame++
		if m.state.IsAnalyzing() {
			cmds = append(cmds, animationTickCmd())
		}

	case spinner.TickMsg:
		if m.state.IsAnalyzing() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	m.layout()

	switch {
	case key.Matches(msg, m.keys.Analyze):
		vertical := m.state.GetSelectedVertical()
		if vertical == "" || m.state.IsAnalyzing() {
			return nil
		}
		return func() tea.Msg { return app.AnalyzeMsg{Vertical: vertical} }

	case key.Matches(msg, m.keys.Next):
		m.jump(1)
	case key.Matches(msg, m.keys.Prev):
		m.jump(-1)
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// jump scrolls to the next (dir > 0) or previous insight card.
func (m *Model) jump(dir int) {
	y := m.viewport.YOffset
	if dir > 0 {
		for _, off := range m.offsets {
			if off > y {
				m.viewport.SetYOffset(off)
				return
			}
		}
		return
	}
	for i := len(m.offsets) - 1; i >= 0; i-- {
		if m.offsets[i] < y {
			m.viewport.SetYOffset(m.offsets[i])
			return
		}
	}
	m.viewport.GotoTop()
}

// layout re-renders the viewport content when the analysis or width
// changed. The scroll position survives a resize but not a new analysis.
func (m *Model) layout() {
	a := m.state.GetAnalysis(m.state.GetSelectedVertical())
	if a == m.rendered && m.width == m.renderedWidth {
		return
	}

	content, offsets := renderAnalysis(a, m.contentWidth())
	m.viewport.SetContent(content)
	m.offsets = offsets
	if a != m.rendered {
		m.viewport.GotoTop()
	}
	m.rendered = a
	m.renderedWidth = m.width
}

func (m *Model) contentWidth() int {
	return max(m.width-6, 40)
}

// SetSize sets the available size for the insights tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Next, m.keys.Prev, m.keys.Analyze}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Next, m.keys.Prev},
		{m.keys.Top, m.keys.Bottom},
		{m.keys.Analyze},
	}
}
