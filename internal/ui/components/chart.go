// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/ui/styles"
)

const minChartWidth = 20

// RenderChart renders any chart descriptor as terminal text.
func RenderChart(c models.Chart, width, height int) string {
	if c.IsEmpty() {
		return styles.HelpStyle.Render("No data available")
	}
	if width < minChartWidth {
		width = minChartWidth
	}

	var body string
	switch c.Kind {
	case models.ChartBar:
		s := c.Series[0]
		body = RenderBarChart(s.Values, s.Labels, width)
		if isHourly(c.XLabel, s.Labels) {
			body += "\n\n" + RenderHourlyHeatmap(hourSlots(s))
		}
	case models.ChartGroupedBar:
		body = RenderGroupedBarChart(c.Series, width)
	case models.ChartPie:
		body = RenderPieChart(c.Series[0], width)
	case models.ChartHistogram:
		body = RenderHistogram(c.Bins, width, height, c.XLabel)
	case models.ChartIndicator:
		body = RenderIndicator(*c.Indicator)
	default:
		body = styles.HelpStyle.Render("Unsupported chart")
	}

	var out []string
	if c.Title != "" {
		out = append(out, styles.SubTitleStyle.UnsetMarginBottom().Render(c.Title))
	}
	if axes := axisCaption(c); axes != "" {
		out = append(out, styles.HelpStyle.Render(axes))
	}
	out = append(out, body)
	return strings.Join(out, "\n")
}

func axisCaption(c models.Chart) string {
	switch {
	case c.Kind == models.ChartPie || c.Kind == models.ChartIndicator:
		return ""
	case c.XLabel != "" && c.YLabel != "":
		return fmt.Sprintf("%s by %s", c.YLabel, c.XLabel)
	case c.YLabel != "":
		return c.YLabel
	default:
		return c.XLabel
	}
}

// FormatValue prints whole numbers with thousands separators and fractions
// with two decimals.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return humanize.Comma(int64(v))
	}
	return humanize.CommafWithDigits(math.Round(v*100)/100, 2)
}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	if width < minChartWidth {
		width = minChartWidth
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue),
	)
}

// RenderBarChart creates a simple horizontal bar chart.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	maxLabelLen := 0
	for _, l := range labels {
		maxLabelLen = max(maxLabelLen, ansi.StringWidth(l))
	}
	maxLabelLen = min(maxLabelLen, width/3)

	barWidth := width - maxLabelLen - 12 // Leave room for label and value
	if barWidth < 10 {
		barWidth = 10
	}

	var lines []string
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		label = ansi.Truncate(label, maxLabelLen, "…")
		paddedLabel := strings.Repeat(" ", maxLabelLen-ansi.StringWidth(label)) + label

		barLen := int((v / maxVal) * float64(barWidth))
		if barLen < 0 {
			barLen = 0
		}

		bar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("█", barLen))
		lines = append(lines, paddedLabel+" │"+bar+" "+FormatValue(v))
	}

	return strings.Join(lines, "\n")
}

// RenderGroupedBarChart draws one block per category with a colored bar per
// series, followed by a legend.
func RenderGroupedBarChart(series []models.Series, width int) string {
	if len(series) == 0 {
		return ""
	}

	var (
		categories []string
		seen       = make(map[string]bool)
		maxVal     float64
	)
	for _, s := range series {
		for i, l := range s.Labels {
			if !seen[l] {
				seen[l] = true
				categories = append(categories, l)
			}
			maxVal = max(maxVal, s.Values[i])
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	nameWidth := 0
	for _, s := range series {
		nameWidth = max(nameWidth, ansi.StringWidth(s.Name))
	}
	nameWidth = min(nameWidth, width/3)
	barWidth := max(width-nameWidth-14, 10)

	var lines []string
	for _, cat := range categories {
		lines = append(lines, styles.CardTitleStyle.UnsetMarginBottom().Render(cat))
		for si, s := range series {
			v, ok := valueOf(s, cat)
			if !ok {
				continue
			}
			name := ansi.Truncate(s.Name, nameWidth, "…")
			name = strings.Repeat(" ", nameWidth-ansi.StringWidth(name)) + name
			barLen := max(int((v/maxVal)*float64(barWidth)), 0)
			bar := lipgloss.NewStyle().Foreground(styles.SeriesColor(si)).Render(strings.Repeat("█", barLen))
			lines = append(lines, "  "+name+" │"+bar+" "+FormatValue(v))
		}
	}

	items := make([]LegendItem, len(series))
	for i, s := range series {
		items[i] = LegendItem{Label: s.Name, Color: styles.SeriesColor(i)}
	}
	lines = append(lines, "", RenderLegend(items))

	return strings.Join(lines, "\n")
}

func valueOf(s models.Series, label string) (float64, bool) {
	for i, l := range s.Labels {
		if l == label {
			return s.Values[i], true
		}
	}
	return 0, false
}

// RenderPieChart draws each category as a share bar of the total.
func RenderPieChart(s models.Series, width int) string {
	total := 0.0
	for _, v := range s.Values {
		total += v
	}
	if total == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	labelWidth := 0
	for _, l := range s.Labels {
		labelWidth = max(labelWidth, ansi.StringWidth(l))
	}

	lines := make([]string, 0, len(s.Values)+1)
	for i, v := range s.Values {
		percent := v / total * 100
		lines = append(lines, ShareBar(percent, s.Labels[i], labelWidth, width, i))
	}
	lines = append(lines, styles.HelpStyle.Render(fmt.Sprintf("total %s", FormatValue(total))))
	return strings.Join(lines, "\n")
}

// RenderHistogram plots bin frequencies and lists the bin edges.
func RenderHistogram(bins []models.Bin, width, height int, caption string) string {
	if len(bins) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	counts := make([]float64, len(bins))
	labels := make([]string, len(bins))
	for i, b := range bins {
		counts[i] = float64(b.Count)
		labels[i] = fmt.Sprintf("%s–%s", FormatValue(b.Lower), FormatValue(b.Upper))
	}

	var parts []string
	if len(bins) > 1 {
		graphWidth := max(width-10, minChartWidth)
		parts = append(parts, RenderLineChart(counts, graphWidth, max(height, 6), caption))
	}

	var nonEmpty []int
	for i, c := range counts {
		if c > 0 {
			nonEmpty = append(nonEmpty, i)
		}
	}
	vals := make([]float64, len(nonEmpty))
	labs := make([]string, len(nonEmpty))
	for j, i := range nonEmpty {
		vals[j] = counts[i]
		labs[j] = labels[i]
	}
	parts = append(parts, RenderBarChart(vals, labs, width))

	return strings.Join(parts, "\n\n")
}

// RenderIndicator shows a headline value with its delta to the reference.
func RenderIndicator(ind models.Indicator) string {
	value := lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Render(FormatValue(ind.Value))

	delta := ind.Delta()
	deltaStyle := styles.SuccessTextStyle
	sign := "+"
	if delta < 0 {
		deltaStyle = styles.ErrorTextStyle
		sign = ""
	}
	deltaStr := deltaStyle.Render(fmt.Sprintf("%s%s vs mean %s", sign, FormatValue(delta), FormatValue(ind.Reference)))

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.HelpDescStyle.Render(ind.Label),
		value,
		deltaStr,
	)
}

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{'░', '▒', '▓', '█'}

// RenderHourlyHeatmap creates a 24-hour activity heatmap.
func RenderHourlyHeatmap(patterns []float64) string {
	if len(patterns) != 24 {
		// Pad or truncate to 24 hours
		padded := make([]float64, 24)
		copy(padded, patterns)
		patterns = padded
	}

	maxVal := 0.0
	for _, v := range patterns {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	result.WriteString("00 ")

	for i, v := range patterns {
		intensity := int((v / maxVal) * float64(len(HeatmapBlocks)-1))
		intensity = min(max(intensity, 0), len(HeatmapBlocks)-1)

		var style lipgloss.Style
		switch intensity {
		case 0:
			style = lipgloss.NewStyle().Foreground(styles.Subtle)
		case 1:
			style = lipgloss.NewStyle().Foreground(styles.Success)
		case 2:
			style = lipgloss.NewStyle().Foreground(styles.Warning)
		case 3:
			style = lipgloss.NewStyle().Foreground(styles.Error)
		}

		result.WriteString(style.Render(string(HeatmapBlocks[intensity])))

		// Gap at noon
		if i == 11 {
			result.WriteString(" ")
		}
	}

	result.WriteString(" 23 (UTC)")
	return result.String()
}

// isHourly reports whether a bar chart counts by hour of day.
func isHourly(xLabel string, labels []string) bool {
	if len(labels) == 0 || !strings.Contains(strings.ToLower(xLabel), "hour") {
		return false
	}
	for _, l := range labels {
		if _, ok := parseHour(l); !ok {
			return false
		}
	}
	return true
}

func parseHour(label string) (int, bool) {
	h, err := strconv.Atoi(label)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

func hourSlots(s models.Series) []float64 {
	slots := make([]float64, 24)
	for i, l := range s.Labels {
		if h, ok := parseHour(l); ok {
			slots[h] = s.Values[i]
		}
	}
	return slots
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// ChartSparkline summarizes the shape of bar and histogram charts in one
// line. Pies and indicators have no shape and return "".
func ChartSparkline(c models.Chart, width int) string {
	switch c.Kind {
	case models.ChartBar, models.ChartGroupedBar:
		if len(c.Series) == 0 {
			return ""
		}
		return RenderSparkline(c.Series[0].Values, width)
	case models.ChartHistogram:
		counts := make([]float64, len(c.Bins))
		for i, b := range c.Bins {
			counts[i] = float64(b.Count)
		}
		return RenderSparkline(counts, width)
	default:
		return ""
	}
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
