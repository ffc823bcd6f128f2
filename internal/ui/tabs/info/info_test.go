package info

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/forge-insights-tui/internal/app"
	"github.com/j-veylop/forge-insights-tui/internal/config"
	"github.com/j-veylop/forge-insights-tui/internal/services"
	"github.com/j-veylop/forge-insights-tui/internal/version"
)

func testConfig() *config.Config {
	return &config.Config{
		DataDir:        "/data/forge",
		WatchDatasets:  true,
		PreviewRows:    100,
		ReloadDebounce: 250 * time.Millisecond,
		LogLevel:       "info",
	}
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), testConfig(), nil)
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() != nil {
		t.Error("Init should not start any command")
	}
}

func TestModel_Update(t *testing.T) {
	m := New(app.NewState(), testConfig(), nil)

	updated, _ := m.Update(nil)
	if updated == nil {
		t.Error("Update returned nil model")
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if updated == nil {
		t.Error("Update returned nil model")
	}
}

func TestModel_View(t *testing.T) {
	m := New(app.NewState(), testConfig(), []string{"puzzle", "shooter"})
	m.SetSize(100, 60)

	view := m.View()
	for _, want := range []string{
		"/data/forge",
		"built-in",
		"stderr (info)",
		"250ms",
		"Puzzle, Shooter",
		"Scanning data directory",
		version.AppName,
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}
}

func TestModel_ViewStats(t *testing.T) {
	state := app.NewState()
	state.SetStats(services.StatsEvent{DatasetCount: 3, SupportedCount: 2, TotalBytes: 4096, Analyzed: 1})
	m := New(state, testConfig(), nil)
	m.SetSize(100, 60)

	view := m.View()
	for _, want := range []string{"3 (2 supported)", "4.1 kB", "50%", "none"} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}
}

func TestModel_ViewNoConfig(t *testing.T) {
	m := New(app.NewState(), nil, nil)
	m.SetSize(80, 40)

	if !strings.Contains(m.View(), "Configuration not loaded") {
		t.Error("View should handle a missing config")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(), testConfig(), nil)
	if len(m.ShortHelp()) != 2 {
		t.Error("ShortHelp should list two bindings")
	}
	if len(m.FullHelp()) != 1 {
		t.Error("FullHelp should have one group")
	}
}
