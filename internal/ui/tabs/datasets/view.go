package datasets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/ui/components"
	"github.com/j-veylop/forge-insights-tui/internal/ui/styles"
)

const maxCellWidth = 18

// View renders the datasets tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(&m.spinner, m.width, m.height)
	}

	m.syncRows()

	sections := []string{m.renderTitle(), m.renderList()}
	if preview := m.renderPreview(); preview != "" {
		sections = append(sections, preview)
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Datasets")

	subtitle := "Scanning data directory"
	if stats := m.state.GetStats(); stats != nil {
		subtitle = fmt.Sprintf("%d datasets, %d with strategies, %s on disk",
			stats.DatasetCount, stats.SupportedCount, humanize.Bytes(uint64(max(stats.TotalBytes, 0))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) renderList() string {
	cardWidth := max(m.width-6, 60)

	if len(m.verticals) == 0 {
		rows := []string{
			styles.CardTitleStyle.Render("No datasets"),
			"",
			styles.HelpStyle.Render("Drop <vertical>.csv or <vertical>.db files into the data directory."),
			styles.InfoTextStyle.Render("  ╰─▶ press r to rescan"),
		}
		return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	return styles.CardStyle.Width(cardWidth).Render(m.table.View())
}

// renderPreview shows the first rows of the selected dataset once it has
// been analyzed.
func (m *Model) renderPreview() string {
	ds, ok := m.state.SelectedDataset()
	if !ok {
		return ""
	}
	cardWidth := max(m.width-6, 60)

	a := m.state.GetAnalysis(ds.Vertical)
	var rows []string
	switch {
	case a == nil:
		rows = append(rows,
			styles.CardTitleStyle.Render(fmt.Sprintf("%s dataset", ds.DisplayName())),
			"",
			styles.HelpStyle.Render("Press enter to load and analyze this dataset."),
		)
		if !ds.Supported {
			rows = append(rows, styles.WarningTextStyle.Render("No strategies are registered for this vertical."))
		}
	default:
		rows = append(rows, styles.CardTitleStyle.Render(PreviewTitle(a)), "")
		budget := m.height - tableHeight(m.height) - 14
		rows = append(rows, RenderPreview(a, cardWidth-4, budget))
	}

	return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// PreviewTitle returns the heading of a dataset preview.
func PreviewTitle(a *models.Analysis) string {
	return fmt.Sprintf("%s dataset example (%s rows)", a.Dataset.DisplayName(), humanize.Comma(int64(a.Rows)))
}

// RenderPreview renders the preview rows of an analysis as a table no wider
// than width. At most maxRows rows are drawn; the rest are summarized.
func RenderPreview(a *models.Analysis, width, maxRows int) string {
	if len(a.Columns) == 0 {
		return styles.HelpStyle.Render("Dataset has no columns.")
	}
	if len(a.Preview) == 0 {
		return styles.HelpStyle.Render("Preview disabled or dataset empty.")
	}

	// Keep the columns that fit; each cell takes its width plus a separator.
	fit := 0
	used := 1
	for _, col := range a.Columns {
		w := min(max(ansi.StringWidth(col), 4), maxCellWidth) + 3
		if used+w > width && fit > 0 {
			break
		}
		used += w
		fit++
	}

	shown := a.Preview
	if maxRows > 0 && len(shown) > maxRows {
		shown = shown[:maxRows]
	}

	rows := make([][]string, 0, len(shown))
	for _, r := range shown {
		cells := make([]string, fit)
		for i := range cells {
			if i < len(r) {
				cells[i] = ansi.Truncate(r[i], maxCellWidth, "…")
			}
		}
		rows = append(rows, cells)
	}

	headers := make([]string, fit)
	for i := range headers {
		headers[i] = ansi.Truncate(a.Columns[i], maxCellWidth, "…")
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Subtle)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return styles.TableCellStyle.Bold(true).Foreground(styles.Primary)
			}
			return styles.TableCellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	out := t.String()

	var notes []string
	if hidden := len(a.Preview) - len(shown); hidden > 0 {
		notes = append(notes, fmt.Sprintf("%d more preview rows", hidden))
	}
	if hidden := len(a.Columns) - fit; hidden > 0 {
		notes = append(notes, fmt.Sprintf("%d more columns", hidden))
	}
	if len(notes) > 0 {
		out = lipgloss.JoinVertical(lipgloss.Left, out, styles.HelpStyle.Render("… "+strings.Join(notes, ", ")))
	}
	return out
}
