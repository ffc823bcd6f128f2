package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/forge-insights-tui/internal/models"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Loading")
	if s.label != "Loading" {
		t.Error("Spinner label mismatch")
	}
}

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("Init")

	s.SetLabel("Loading")
	if s.Label() != "Loading" {
		t.Errorf("Label = %s, want Loading", s.Label())
	}

	if s.View() == "" {
		t.Error("View returned empty")
	}
	if s.ViewWithLabel() == "" {
		t.Error("ViewWithLabel returned empty")
	}
	if s.Init() == nil {
		t.Error("Init should return command")
	}

	_, cmd := s.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Update should return command for tick")
	}
	if s.Tick() == nil {
		t.Error("Tick should return command")
	}
	if s.Spinner().Spinner.Frames == nil {
		t.Error("Spinner accessor failed")
	}
}

func TestSpinner_SetDataset(t *testing.T) {
	s := NewSpinner("")
	s.SetDataset(models.Dataset{Vertical: "puzzle", Format: models.FormatSQLite})
	if s.Label() != "Analyzing Puzzle (sqlite)…" {
		t.Errorf("Label = %q", s.Label())
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading...")
	if view := RenderSpinnerCentered(&s, 20, 5); view == "" {
		t.Error("RenderSpinnerCentered returned empty")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{1234567, "1,234,567"},
		{2.5, "2.5"},
		{1.256, "1.26"},
		{-1.256, "-1.26"},
		{2.999, "3"},
		{1234.567, "1,234.57"},
		{-3, "-3"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderLineChart(t *testing.T) {
	if s := RenderLineChart([]float64{1, 2, 3, 4}, 20, 5, "Test"); s == "" {
		t.Error("RenderLineChart returned empty")
	}
	if s := RenderLineChart(nil, 20, 5, ""); !strings.Contains(s, "No data") {
		t.Errorf("empty line chart = %q", s)
	}
}

func TestRenderBarChart(t *testing.T) {
	s := ansi.Strip(RenderBarChart([]float64{10, 20}, []string{"A", "B"}, 40))
	lines := strings.Split(s, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "A │") || !strings.HasSuffix(lines[0], " 10") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if strings.Count(lines[1], "█") <= strings.Count(lines[0], "█") {
		t.Error("larger value should have a longer bar")
	}
	if RenderBarChart(nil, nil, 40) != "" {
		t.Error("empty values should render nothing")
	}
}

func TestRenderGroupedBarChart(t *testing.T) {
	series := []models.Series{
		{Name: "clicked", Labels: []string{"menu"}, Values: []float64{2}},
		{Name: "viewed", Labels: []string{"menu", "pre_game"}, Values: []float64{5, 3}},
	}
	s := ansi.Strip(RenderGroupedBarChart(series, 60))

	for _, want := range []string{"menu", "pre_game", "clicked", "viewed", "■"} {
		if !strings.Contains(s, want) {
			t.Errorf("grouped chart missing %q:\n%s", want, s)
		}
	}
	if strings.Index(s, "menu") > strings.Index(s, "pre_game") {
		t.Error("categories should keep first-seen order")
	}
}

func TestRenderPieChart(t *testing.T) {
	s := ansi.Strip(RenderPieChart(models.Series{
		Labels: []string{"Short", "Long"},
		Values: []float64{3, 1},
	}, 60))

	if !strings.Contains(s, "75.0%") || !strings.Contains(s, "25.0%") {
		t.Errorf("pie shares missing:\n%s", s)
	}
	if !strings.Contains(s, "total 4") {
		t.Errorf("pie total missing:\n%s", s)
	}

	empty := RenderPieChart(models.Series{Labels: []string{"x"}, Values: []float64{0}}, 60)
	if !strings.Contains(empty, "No data") {
		t.Error("zero total should render no data")
	}
}

func TestRenderHistogram(t *testing.T) {
	bins := []models.Bin{
		{Lower: 0, Upper: 1, Count: 2},
		{Lower: 1, Upper: 2, Count: 0},
		{Lower: 2, Upper: 3, Count: 5},
	}
	s := ansi.Strip(RenderHistogram(bins, 60, 6, "K/D"))
	if !strings.Contains(s, "0–1") || !strings.Contains(s, "2–3") {
		t.Errorf("histogram edges missing:\n%s", s)
	}
	if strings.Contains(s, "1–2 │") {
		t.Error("empty bins should not get a bar row")
	}

	single := ansi.Strip(RenderHistogram([]models.Bin{{Lower: 0.5, Upper: 1.5, Count: 1}}, 60, 6, ""))
	if !strings.Contains(single, "0.5–1.5") {
		t.Errorf("single bin = %q", single)
	}
}

func TestRenderIndicator(t *testing.T) {
	up := ansi.Strip(RenderIndicator(models.Indicator{Label: "Most popular: menu", Value: 4, Reference: 2.5}))
	if !strings.Contains(up, "Most popular: menu") || !strings.Contains(up, "+1.5 vs mean 2.5") {
		t.Errorf("indicator = %q", up)
	}

	down := ansi.Strip(RenderIndicator(models.Indicator{Value: 1, Reference: 3}))
	if !strings.Contains(down, "-2 vs mean 3") {
		t.Errorf("indicator = %q", down)
	}
}

func TestRenderChart(t *testing.T) {
	tests := []struct {
		name  string
		chart models.Chart
		want  string
	}{
		{
			name:  "empty",
			chart: models.Chart{Title: "Nothing"},
			want:  "No data available",
		},
		{
			name: "bar with axes",
			chart: models.Chart{
				Kind: models.ChartBar, Title: "Levels", XLabel: "Level", YLabel: "Count",
				Series: []models.Series{{Labels: []string{"l1"}, Values: []float64{3}}},
			},
			want: "Count by Level",
		},
		{
			name: "hourly heatmap",
			chart: models.Chart{
				Kind: models.ChartBar, XLabel: "Hour of Day",
				Series: []models.Series{{Labels: []string{"0", "13"}, Values: []float64{1, 2}}},
			},
			want: "23 (UTC)",
		},
		{
			name: "indicator",
			chart: models.Chart{
				Kind:      models.ChartIndicator,
				Indicator: &models.Indicator{Label: "Top", Value: 2, Reference: 1},
			},
			want: "Top",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(RenderChart(tt.chart, 60, 8))
			if !strings.Contains(got, tt.want) {
				t.Errorf("RenderChart() missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestIsHourly(t *testing.T) {
	if !isHourly("Hour of Day", []string{"0", "23"}) {
		t.Error("hour labels should be hourly")
	}
	if isHourly("Level", []string{"1", "2"}) {
		t.Error("numeric levels are not hourly")
	}
	if isHourly("Hour", []string{"24"}) {
		t.Error("24 is not an hour of day")
	}
}

func TestRenderHourlyHeatmap(t *testing.T) {
	if s := RenderHourlyHeatmap(make([]float64, 24)); s == "" {
		t.Error("RenderHourlyHeatmap returned empty")
	}
	if s := ansi.Strip(RenderHourlyHeatmap([]float64{1})); !strings.HasPrefix(s, "00 █") {
		t.Errorf("short input should pad, got %q", s)
	}
}

func TestRenderSparkline(t *testing.T) {
	if s := RenderSparkline([]float64{1, 2, 3}, 10); s != "▃▅█" {
		t.Errorf("RenderSparkline = %q", s)
	}
	if RenderSparkline([]float64{1}, 0) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestChartSparkline(t *testing.T) {
	bar := models.Chart{Kind: models.ChartBar, Series: []models.Series{{Labels: []string{"a", "b"}, Values: []float64{12, 7}}}}
	if s := ChartSparkline(bar, 10); s != "█▅" {
		t.Errorf("bar sparkline = %q", s)
	}

	hist := models.Chart{Kind: models.ChartHistogram, Bins: []models.Bin{{Count: 0}, {Count: 7}}}
	if s := ChartSparkline(hist, 10); s != "▁█" {
		t.Errorf("histogram sparkline = %q", s)
	}

	pie := models.Chart{Kind: models.ChartPie, Series: bar.Series}
	if s := ChartSparkline(pie, 10); s != "" {
		t.Errorf("pie sparkline = %q, want empty", s)
	}
}

func TestRenderLegend(t *testing.T) {
	items := []LegendItem{
		{Label: "A", Color: lipgloss.Color("#ffffff")},
	}
	if s := RenderLegend(items); !strings.Contains(s, "A") {
		t.Error("RenderLegend missing label")
	}
}

func TestShareBar(t *testing.T) {
	s := ansi.Strip(ShareBar(50, "Medium", 6, 41, 0))
	if !strings.HasPrefix(s, "Medium [") || !strings.HasSuffix(s, "50.0%") {
		t.Errorf("ShareBar = %q", s)
	}
	bar := s[strings.Index(s, "[")+1 : strings.Index(s, "]")]
	if strings.Count(bar, "█") != strings.Count(bar, "░") {
		t.Errorf("half-filled bar expected, got %q", bar)
	}
}

func TestRenderSolidBar(t *testing.T) {
	tests := []struct {
		percent float64
		filled  int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{150, 10},
		{-5, 0},
	}
	for _, tt := range tests {
		s := ansi.Strip(RenderSolidBar(tt.percent, 10, lipgloss.Color("1")))
		if got := strings.Count(s, "█"); got != tt.filled {
			t.Errorf("RenderSolidBar(%v) filled = %d, want %d", tt.percent, got, tt.filled)
		}
	}
	if RenderSolidBar(50, 0, lipgloss.Color("1")) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestRenderGradientBar(t *testing.T) {
	s := ansi.Strip(RenderGradientBar(30, 10))
	if strings.Count(s, "█") != 3 || strings.Count(s, "░") != 7 {
		t.Errorf("RenderGradientBar = %q", s)
	}
}

func TestCoverageBar(t *testing.T) {
	if s := ansi.Strip(CoverageBar(3, 4, 30)); !strings.HasSuffix(s, "3/4") {
		t.Errorf("CoverageBar = %q", s)
	}
	if s := CoverageBar(0, 0, 30); !strings.Contains(s, "no strategies") {
		t.Errorf("CoverageBar = %q", s)
	}
}

func TestInterpolateColor(t *testing.T) {
	if got := interpolateColor("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("start = %s", got)
	}
	if got := interpolateColor("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Errorf("end = %s", got)
	}
	if got := hexToRGB("zz"); got != [3]int{0, 0, 0} {
		t.Errorf("bad hex = %v", got)
	}
}

func TestShimmerBar(t *testing.T) {
	if s := ansi.Strip(ShimmerBar(10, 3)); ansi.StringWidth(s) != 10 {
		t.Errorf("ShimmerBar width = %d", ansi.StringWidth(s))
	}
	if ShimmerBar(0, 0) != "" {
		t.Error("zero width should render nothing")
	}
}
