package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/ui/components"
	"github.com/j-veylop/forge-insights-tui/internal/ui/styles"
)

const (
	chartHeight    = 8
	sparklineWidth = 24
)

// View renders the insights tab.
func (m *Model) View() string {
	if m.state.IsAnalyzing() {
		return m.renderLoading()
	}

	m.layout()
	if m.rendered == nil {
		return m.renderEmpty()
	}

	scroll := styles.HelpStyle.Render(fmt.Sprintf("%3.f%%  n/p jump between insights", m.viewport.ScrollPercent()*100))
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), scroll))
}

func (m *Model) renderLoading() string {
	bar := components.ShimmerBar(min(40, max(m.width-10, 10)), m.animationFrame)
	content := lipgloss.JoinVertical(lipgloss.Center, m.spinner.ViewWithLabel(), "", bar)
	return styles.CenterBoth(content, m.width, m.height)
}

func (m *Model) renderEmpty() string {
	var rows []string
	rows = append(rows, styles.TitleStyle.Render("Insights"))

	ds, ok := m.state.SelectedDataset()
	switch {
	case !ok:
		rows = append(rows, styles.HelpStyle.Render("Select a dataset on the Datasets tab."))
	default:
		rows = append(rows,
			styles.HelpStyle.Render(fmt.Sprintf("%s has not been analyzed yet.", ds.DisplayName())),
			"",
			styles.InfoTextStyle.Render("  ╰─▶ press a to analyze"),
		)
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderAnalysis lays out the header and one card per insight. It returns
// the content and the first line of every card.
func renderAnalysis(a *models.Analysis, width int) (string, []int) {
	if a == nil {
		return "", nil
	}

	var (
		b       strings.Builder
		offsets []int
		line    int
	)
	write := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
		line += lipgloss.Height(s)
	}

	write(renderHeader(a, width))

	if len(a.Results) == 0 {
		write(styles.WarningTextStyle.Render("No strategies are registered for this vertical."))
		return b.String(), nil
	}

	for _, r := range a.Results {
		offsets = append(offsets, line)
		write(renderCard(r, width))
	}

	return b.String(), offsets
}

func renderHeader(a *models.Analysis, width int) string {
	title := styles.TitleStyle.Render(fmt.Sprintf("%s insights", a.Dataset.DisplayName()))
	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%s rows · %d columns · %s · analyzed in %s",
		humanize.Comma(int64(a.Rows)),
		len(a.Columns),
		a.Dataset.Format,
		a.Duration.Round(time.Millisecond)))

	rows := []string{title, subtitle}
	if total := len(a.Results); total > 0 {
		ok := total - a.Empty() - a.Failed()
		rows = append(rows, "", "Strategies with data "+components.CoverageBar(ok, total, min(width-22, 50)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append(rows, "")...)
}

// renderCard renders one strategy outcome: name, goal, chart, explanation
// and recommendation. Failures show the error and whatever chart exists.
func renderCard(r models.InsightResult, width int) string {
	inner := max(width-6, 20)

	var rows []string
	title := styles.CardTitleStyle.Render(r.Name)
	if spark := components.ChartSparkline(r.Chart, sparklineWidth); spark != "" && !r.NoData {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", styles.HelpStyle.Render(spark))
	}
	rows = append(rows, title)

	if r.Err != nil {
		rows = append(rows, styles.ErrorTextStyle.Width(inner).Render("✗ "+r.Err.Error()))
	}
	if r.Goal != "" {
		rows = append(rows, styles.GoalStyle.Width(inner).Render("Goal: "+r.Goal))
	}
	rows = append(rows, "")

	switch {
	case r.NoData:
		rows = append(rows, styles.NoDataStyle.Render("No data: "+r.Reason))
	case !r.Chart.IsEmpty():
		rows = append(rows, components.RenderChart(r.Chart, inner, chartHeight))
	case r.Err == nil:
		rows = append(rows, styles.HelpStyle.Render("No data available"))
	}

	if r.Explanation != "" {
		rows = append(rows, "", styles.ExplanationStyle.Width(inner).Render(r.Explanation))
	}
	if r.Recommendation != "" {
		rows = append(rows, "", styles.RecommendationStyle.Width(inner).Render(r.Recommendation))
	}

	border := styles.CardStyle
	if r.Err != nil {
		border = border.BorderForeground(styles.Error)
	}
	return border.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
