package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/forge-insights-tui/internal/logger"
	"github.com/j-veylop/forge-insights-tui/internal/ui/styles"
)

const percentWidth = 7

// ShareBar renders one category of a proportion chart: label, a bar filled
// to percent and the percentage. series picks the bar color.
func ShareBar(percent float64, label string, labelWidth, width, series int) string {
	labelWidth = min(labelWidth, max(width/3, 4))
	barWidth := width - labelWidth - percentWidth - 4
	if barWidth < 5 {
		barWidth = 5
	}

	label = ansi.Truncate(label, labelWidth, "…")
	labelStr := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(labelWidth).
		Render(label)

	bar := RenderSolidBar(percent, barWidth, styles.SeriesColor(series))

	percentStr := styles.GetShareStyle(percent).
		Width(percentWidth).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.1f%%", percent))

	return fmt.Sprintf("%s [%s] %s", labelStr, bar, percentStr)
}

// RenderSolidBar renders a bar of a single color filled to percent.
func RenderSolidBar(percent float64, width int, color lipgloss.Color) string {
	if width < 1 {
		return ""
	}
	filled := clampFill(percent, width)

	fill := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(styles.Subtle).Render(strings.Repeat("░", width-filled))
	return fill + rest
}

// RenderGradientBar renders just the bar part with gradient colors.
func RenderGradientBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}
	filled := clampFill(percent, width)

	var barChars []string
	for i := 0; i < width; i++ {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor("#7d56f4", "#51cf66", t)
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			barChars = append(barChars, style.Render("█"))
		} else {
			style := lipgloss.NewStyle().Foreground(styles.Subtle)
			barChars = append(barChars, style.Render("░"))
		}
	}

	return strings.Join(barChars, "")
}

func clampFill(percent float64, width int) int {
	filled := int(float64(width) * percent / 100)
	return min(max(filled, 0), width)
}

// CoverageBar shows how many strategies of a vertical produced a chart.
func CoverageBar(ok, total, width int) string {
	if total == 0 {
		return styles.HelpStyle.Render("no strategies")
	}
	percent := float64(ok) / float64(total) * 100
	barWidth := max(width-12, 5)
	return fmt.Sprintf("[%s] %d/%d", RenderGradientBar(percent, barWidth), ok, total)
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}

// ShimmerBar renders an indeterminate loading bar; frame advances the
// highlight.
func ShimmerBar(width, frame int) string {
	if width < 1 {
		return ""
	}

	const cycle = 120
	t := float64(frame%cycle) / float64(cycle)
	var p float64
	if t < 0.5 {
		p = t * 2
	} else {
		p = (1 - t) * 2
	}
	eased := p * p * (3 - 2*p)
	shimmerPos := int(eased * float64(width))

	var b strings.Builder
	for i := 0; i < width; i++ {
		dist := shimmerPos - i
		if dist < 0 {
			dist = -dist
		}
		switch {
		case dist < 3:
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Primary).Render("▓"))
		case dist < 5:
			b.WriteString(lipgloss.NewStyle().Foreground(styles.TextSecondary).Render("▒"))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(styles.BgLight).Render("░"))
		}
	}
	return b.String()
}
