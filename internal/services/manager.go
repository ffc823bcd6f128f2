// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/forge-insights-tui/internal/config"
	"github.com/j-veylop/forge-insights-tui/internal/goals"
	"github.com/j-veylop/forge-insights-tui/internal/logger"
	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/services/datasets"
	"github.com/j-veylop/forge-insights-tui/internal/services/insights"
	"github.com/j-veylop/forge-insights-tui/internal/strategies"
)

// ErrUnknownDataset is returned when no dataset file exists for a vertical.
var ErrUnknownDataset = errors.New("no dataset for vertical")

type (
	// DatasetsChangedEvent is emitted when the dataset list changes.
	DatasetsChangedEvent struct {
		Datasets []models.Dataset
	}

	// DatasetUpdatedEvent is emitted when a dataset file is rewritten or
	// removed. Cached analyses of it are already dropped.
	DatasetUpdatedEvent struct {
		Dataset models.Dataset
		Removed bool
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}

	// StatsEvent is emitted when global statistics change.
	StatsEvent struct {
		DatasetCount   int
		SupportedCount int
		TotalBytes     int64
		Analyzed       int
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DatasetsChangedEvent) isServiceEvent() {}
func (DatasetUpdatedEvent) isServiceEvent()  {}
func (ErrorEvent) isServiceEvent()           {}
func (StatsEvent) isServiceEvent()           {}

type cachedAnalysis struct {
	size     int64
	modTime  time.Time
	analysis *models.Analysis
}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	datasets    *datasets.Service
	engine      *insights.Engine
	previewRows int
	notify      bool
	notifier    func(title, message string, icon any) error
	cache       map[string]cachedAnalysis
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	closeOnce   sync.Once
	subscribers []chan<- ServiceEvent
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	g, err := goals.Load(cfg.GoalsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	registry := strategies.Default()

	m := &Manager{
		engine:      insights.New(registry, g),
		previewRows: cfg.PreviewRows,
		notify:      cfg.DesktopNotify,
		notifier:    beeep.Notify,
		cache:       make(map[string]cachedAnalysis),
		eventChan:   make(chan ServiceEvent, 100),
		stopChan:    make(chan struct{}),
	}

	m.datasets, err = datasets.New(cfg.DataDir, datasets.Options{
		Watch:     cfg.WatchDatasets,
		Debounce:  cfg.ReloadDebounce,
		Supported: registry.Has,
	})
	if err != nil {
		return nil, err
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.datasets.Events():
			m.handleDatasetEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleDatasetEvent converts and broadcasts dataset events.
func (m *Manager) handleDatasetEvent(event datasets.Event) {
	switch event.Type {
	case datasets.EventDatasetsLoaded, datasets.EventDatasetsChanged:
		m.broadcast(DatasetsChangedEvent{Datasets: m.datasets.List()})
		m.broadcast(m.GetStats())

	case datasets.EventDatasetAdded:
		if event.Dataset != nil {
			m.notifyAdded(*event.Dataset)
		}

	case datasets.EventDatasetUpdated, datasets.EventDatasetRemoved:
		if event.Dataset == nil {
			return
		}
		m.invalidate(event.Dataset.Vertical)
		m.broadcast(DatasetUpdatedEvent{
			Dataset: *event.Dataset,
			Removed: event.Type == datasets.EventDatasetRemoved,
		})

	case datasets.EventError:
		m.broadcast(ErrorEvent{
			Service: "datasets",
			Error:   event.Error,
		})
	}
}

func (m *Manager) notifyAdded(ds models.Dataset) {
	if !m.notify || m.notifier == nil {
		return
	}
	title := fmt.Sprintf("New dataset: %s", ds.DisplayName())
	body := fmt.Sprintf("%s is ready to analyze.", ds.Path)
	if !ds.Supported {
		body = fmt.Sprintf("%s has no strategies for this vertical.", ds.Path)
	}
	if err := m.notifier(title, body, ""); err != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
}

func (m *Manager) invalidate(vertical string) {
	m.mu.Lock()
	delete(m.cache, vertical)
	m.mu.Unlock()
}

// Analyze loads the dataset of a vertical and evaluates its strategies.
// Results are cached until the file changes.
func (m *Manager) Analyze(ctx context.Context, vertical string) (*models.Analysis, error) {
	ds, ok := m.datasets.Get(vertical)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, vertical)
	}

	m.mu.RLock()
	hit, found := m.cache[vertical]
	m.mu.RUnlock()
	if found && hit.size == ds.Size && hit.modTime.Equal(ds.ModTime) {
		return hit.analysis, nil
	}

	t, err := m.datasets.Load(ctx, ds, 0)
	if err != nil {
		return nil, err
	}

	a, err := m.engine.Analyze(ctx, ds, t, m.previewRows)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[vertical] = cachedAnalysis{size: ds.Size, modTime: ds.ModTime, analysis: a}
	m.mu.Unlock()

	return a, nil
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Datasets returns the current dataset list.
func (m *Manager) Datasets() []models.Dataset {
	return m.datasets.List()
}

// Dataset returns the dataset of a vertical.
func (m *Manager) Dataset(vertical string) (models.Dataset, bool) {
	return m.datasets.Get(vertical)
}

// DataDir returns the directory datasets are read from.
func (m *Manager) DataDir() string {
	return m.datasets.Dir()
}

// Rescan forces a re-read of the data directory.
func (m *Manager) Rescan() error {
	return m.datasets.Rescan()
}

// Registry returns the strategy registry.
func (m *Manager) Registry() *strategies.Registry {
	return m.engine.Registry()
}

// Engine returns the insights engine.
func (m *Manager) Engine() *insights.Engine {
	return m.engine
}

// GetStats returns aggregated statistics.
func (m *Manager) GetStats() StatsEvent {
	list := m.datasets.List()
	stats := StatsEvent{DatasetCount: len(list)}
	for _, ds := range list {
		if ds.Supported {
			stats.SupportedCount++
		}
		stats.TotalBytes += ds.Size
	}

	m.mu.RLock()
	stats.Analyzed = len(m.cache)
	m.mu.RUnlock()

	return stats
}

// InitialState returns the initial state of all services for TUI initialization.
func (m *Manager) InitialState() ([]models.Dataset, StatsEvent) {
	return m.Datasets(), m.GetStats()
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		if m.stopChan != nil {
			close(m.stopChan)
		}

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.datasets != nil {
			err = m.datasets.Close()
		}
	})
	return err
}
