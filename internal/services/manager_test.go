package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/j-veylop/forge-insights-tui/internal/config"
	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/services/datasets"
)

const shooterCSV = `event_type,session_id,user_id,client_ts,weapon_id,map_id,kills,deaths,session_length
session_start,s1,u1,100,,,,,
progression,s1,u1,110,rifle,dust,4,1,
progression,s1,u1,120,pistol,dust,2,2,
progression,s1,u1,130,rifle,port,0,1,
session_end,s1,u1,400,,,,,300
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shooter.csv"), []byte(shooterCSV), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "racing.csv"), []byte("a\n1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return &config.Config{
		DataDir:     dir,
		PreviewRows: 2,
		LogLevel:    "info",
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	mgr, err := NewManager(testConfig(t))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

func TestNewManager(t *testing.T) {
	mgr := newTestManager(t)

	if mgr.Registry() == nil {
		t.Error("Registry should be initialized")
	}
	if mgr.Engine() == nil {
		t.Error("Engine should be initialized")
	}
	if got := len(mgr.Datasets()); got != 2 {
		t.Errorf("Datasets() = %d, want 2", got)
	}
	ds, ok := mgr.Dataset("shooter")
	if !ok || !ds.Supported {
		t.Errorf("shooter should be a supported dataset, got %+v", ds)
	}
	if ds, _ := mgr.Dataset("racing"); ds.Supported {
		t.Error("racing should not be supported")
	}
}

func TestNewManager_BadGoals(t *testing.T) {
	cfg := testConfig(t)
	cfg.GoalsPath = filepath.Join(cfg.DataDir, "missing.yaml")

	if _, err := NewManager(cfg); err == nil {
		t.Error("NewManager should fail for a missing goals file")
	}
}

func TestNewManager_MissingDataDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.DataDir = filepath.Join(cfg.DataDir, "nope")

	if _, err := NewManager(cfg); err == nil {
		t.Error("NewManager should fail for a missing data dir")
	}
}

func TestManager_Analyze(t *testing.T) {
	mgr := newTestManager(t)

	a, err := mgr.Analyze(context.Background(), "shooter")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if a.Rows != 5 {
		t.Errorf("Rows = %d, want 5", a.Rows)
	}
	if len(a.Preview) != 2 {
		t.Errorf("Preview rows = %d, want 2", len(a.Preview))
	}
	if len(a.Results) != 4 {
		t.Fatalf("Results = %d, want 4", len(a.Results))
	}
	for _, r := range a.Results {
		if r.Err != nil {
			t.Errorf("%s failed: %v", r.Name, r.Err)
		}
	}

	again, err := mgr.Analyze(context.Background(), "shooter")
	if err != nil {
		t.Fatalf("second Analyze failed: %v", err)
	}
	if again != a {
		t.Error("second Analyze should hit the cache")
	}
	if stats := mgr.GetStats(); stats.Analyzed != 1 {
		t.Errorf("Analyzed = %d, want 1", stats.Analyzed)
	}
}

func TestManager_AnalyzeUnknown(t *testing.T) {
	mgr := newTestManager(t)

	_, err := mgr.Analyze(context.Background(), "strategy")
	if !errors.Is(err, ErrUnknownDataset) {
		t.Errorf("Analyze error = %v, want ErrUnknownDataset", err)
	}
}

func TestManager_AnalyzeUnsupported(t *testing.T) {
	mgr := newTestManager(t)

	a, err := mgr.Analyze(context.Background(), "racing")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(a.Results) != 0 {
		t.Errorf("expected no results, got %d", len(a.Results))
	}
}

func TestManager_InvalidateOnUpdate(t *testing.T) {
	mgr := newTestManager(t)

	if _, err := mgr.Analyze(context.Background(), "shooter"); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	ds, _ := mgr.Dataset("shooter")
	mgr.handleDatasetEvent(datasets.Event{Type: datasets.EventDatasetUpdated, Dataset: &ds})

	if stats := mgr.GetStats(); stats.Analyzed != 0 {
		t.Errorf("cache not invalidated, Analyzed = %d", stats.Analyzed)
	}

	timeout := time.After(time.Second)
	for {
		select {
		case e := <-ch:
			ev, ok := e.(DatasetUpdatedEvent)
			if !ok {
				continue
			}
			if ev.Dataset.Vertical != "shooter" || ev.Removed {
				t.Errorf("unexpected event %+v", ev)
			}
			return
		case <-timeout:
			t.Fatal("Timeout waiting for DatasetUpdatedEvent")
		}
	}
}

func TestManager_NotifyAdded(t *testing.T) {
	mgr := newTestManager(t)

	var (
		mu     sync.Mutex
		titles []string
	)
	mgr.notifier = func(title, _ string, _ any) error {
		mu.Lock()
		titles = append(titles, title)
		mu.Unlock()
		return nil
	}

	ds := models.Dataset{Vertical: "rpg", Path: "rpg.csv", Supported: true}
	mgr.handleDatasetEvent(datasets.Event{Type: datasets.EventDatasetAdded, Dataset: &ds})
	if len(titles) != 0 {
		t.Error("notification sent while disabled")
	}

	mgr.notify = true
	mgr.handleDatasetEvent(datasets.Event{Type: datasets.EventDatasetAdded, Dataset: &ds})

	mu.Lock()
	defer mu.Unlock()
	if len(titles) != 1 || titles[0] != "New dataset: Rpg" {
		t.Errorf("titles = %v", titles)
	}
}

func TestManager_Subscription(t *testing.T) {
	mgr := newTestManager(t)

	ch, cmd := mgr.Subscribe()
	if ch == nil {
		t.Error("Subscribe returned nil channel")
	}
	if cmd == nil {
		t.Error("Subscribe returned nil command")
	}

	mgr.Unsubscribe(ch)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Channel should be closed")
		}
	default:
		t.Error("Channel should be closed and readable")
	}
}

func TestManager_Broadcast(t *testing.T) {
	mgr := newTestManager(t)

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	event := StatsEvent{DatasetCount: 1}
	mgr.broadcast(event)

	// routeEvents may deliver the initial load events first.
	timeout := time.After(time.Second)
	for {
		select {
		case e := <-ch:
			if got, ok := e.(StatsEvent); ok && got == event {
				return
			}
		case <-timeout:
			t.Fatal("Timeout waiting for broadcast")
		}
	}
}

func TestManager_ErrorEvent(t *testing.T) {
	mgr := newTestManager(t)
	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	boom := errors.New("boom")
	mgr.handleDatasetEvent(datasets.Event{Type: datasets.EventError, Error: boom})

	timeout := time.After(time.Second)
	for {
		select {
		case e := <-ch:
			if ev, ok := e.(ErrorEvent); ok {
				if ev.Service != "datasets" || !errors.Is(ev.Error, boom) {
					t.Errorf("unexpected error event %+v", ev)
				}
				return
			}
		case <-timeout:
			t.Fatal("Timeout waiting for ErrorEvent")
		}
	}
}

func TestManager_InitialState(t *testing.T) {
	mgr := newTestManager(t)

	list, stats := mgr.InitialState()
	if len(list) != 2 {
		t.Errorf("Expected 2 datasets, got %d", len(list))
	}
	if stats.DatasetCount != 2 || stats.SupportedCount != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.TotalBytes <= 0 {
		t.Error("TotalBytes should be positive")
	}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan ServiceEvent, 1)
	ch <- StatsEvent{}

	cmd := WaitForEvent(ch)
	if msg := cmd(); msg == nil {
		t.Error("WaitForEvent cmd returned nil msg")
	}
}

func TestServiceEvent_Interface(t *testing.T) {
	var _ ServiceEvent = DatasetsChangedEvent{}
	var _ ServiceEvent = DatasetUpdatedEvent{}
	var _ ServiceEvent = ErrorEvent{}
	var _ ServiceEvent = StatsEvent{}

	DatasetsChangedEvent{}.isServiceEvent()
	DatasetUpdatedEvent{}.isServiceEvent()
	ErrorEvent{}.isServiceEvent()
	StatsEvent{}.isServiceEvent()
}

func TestManager_Close(t *testing.T) {
	mgr := &Manager{}
	if err := mgr.Close(); err != nil {
		t.Errorf("Close on empty manager: %v", err)
	}

	live := newTestManager(t)
	if err := live.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := live.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
