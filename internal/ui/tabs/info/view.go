package info

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/ui/styles"
	"github.com/j-veylop/forge-insights-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderDatasetsCard(),
		m.renderAboutCard(),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func cardWidth(width int) int {
	return min(max(width-6, 50), 80)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, strategies and build information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"), "")

	if m.config != nil {
		goals := m.config.GoalsPath
		if goals == "" {
			goals = "built-in"
		}
		logFile := m.config.LogFile
		if logFile == "" {
			logFile = "stderr"
		}
		rows = append(rows,
			renderRow("Data Directory", m.config.DataDir),
			renderRow("Goals", goals),
			renderRow("Watch Datasets", onOff(m.config.WatchDatasets)),
			renderRow("Reload Debounce", m.config.ReloadDebounce.String()),
			renderRow("Notifications", onOff(m.config.DesktopNotify)),
			renderRow("Preview Rows", fmt.Sprintf("%d", m.config.PreviewRows)),
			renderRow("Log", fmt.Sprintf("%s (%s)", logFile, m.config.LogLevel)),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(cardWidth(m.width)).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderDatasetsCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Datasets"), "")

	verticals := make([]string, 0, len(m.verticals))
	for _, v := range m.verticals {
		verticals = append(verticals, models.DisplayName(v))
	}
	if len(verticals) == 0 {
		verticals = append(verticals, "none")
	}
	rows = append(rows, renderRow("Strategies for", strings.Join(verticals, ", ")))

	stats := m.state.GetStats()
	if stats == nil {
		rows = append(rows, styles.HelpStyle.Render("Scanning data directory..."))
		return styles.CardStyle.Width(cardWidth(m.width)).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	rows = append(rows,
		renderRow("Datasets", fmt.Sprintf("%d (%d supported)", stats.DatasetCount, stats.SupportedCount)),
		renderRow("On Disk", humanize.Bytes(uint64(max(stats.TotalBytes, 0)))),
	)
	if !m.state.GetLastUpdated().IsZero() {
		rows = append(rows, renderRow("Last Update", humanize.Time(m.state.GetLastUpdated())))
	}

	percent := 0.0
	if stats.SupportedCount > 0 {
		percent = float64(stats.Analyzed) / float64(stats.SupportedCount)
	}
	rows = append(rows, "",
		fmt.Sprintf("%s %s",
			lipgloss.NewStyle().Width(18).Foreground(styles.TextMuted).Render("Analyzed:"),
			m.coverage.ViewAs(min(percent, 1))),
	)

	return styles.CardStyle.Width(cardWidth(m.width)).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About "+version.AppName), "")

	rows = append(rows,
		renderRow("Version", version.GetVersion()),
		renderRow("Build Date", version.GetDate()),
		renderRow("Git Commit", version.GetCommit()),
		renderRow("Go Version", runtime.Version()),
		renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	)

	return styles.CardStyle.Width(cardWidth(m.width)).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
