package app

import (
	"testing"
	"time"

	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/services"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if len(s.Datasets) != 0 {
		t.Error("Datasets should be empty")
	}
	if !s.Loading.Initial {
		t.Error("Initial loading should be true")
	}
}

func TestState_SetLoading(t *testing.T) {
	s := NewState()

	s.SetLoading("analysis", true)
	if !s.IsAnalyzing() {
		t.Error("Analysis loading should be true")
	}
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true")
	}

	s.SetLoading("analysis", false)
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true (Initial is true)")
	}

	s.SetLoading("initial", false)
	if s.AnyLoading() {
		t.Error("AnyLoading should be false")
	}
	if resources := s.GetLoadingResources(); len(resources) != 0 {
		t.Errorf("GetLoadingResources should be empty, got %v", resources)
	}

	s.SetLoading("datasets", true)
	resources := s.GetLoadingResources()
	if len(resources) != 1 || resources[0] != "datasets" {
		t.Errorf("GetLoadingResources should contain datasets, got %v", resources)
	}

	s.SetLoading("bogus", true)
	if len(s.GetLoadingResources()) != 1 {
		t.Error("unknown resources should be ignored")
	}
}

func TestState_SetDatasets_Selection(t *testing.T) {
	s := NewState()

	s.SetDatasets([]models.Dataset{
		{Vertical: "racing"},
		{Vertical: "puzzle", Supported: true},
		{Vertical: "shooter", Supported: true},
	})
	if got := s.GetSelectedVertical(); got != "puzzle" {
		t.Errorf("selected = %q, want first supported puzzle", got)
	}

	s.SelectVertical("shooter")
	s.SetDatasets([]models.Dataset{
		{Vertical: "puzzle", Supported: true},
		{Vertical: "shooter", Supported: true},
	})
	if got := s.GetSelectedVertical(); got != "shooter" {
		t.Errorf("selected = %q, want shooter kept", got)
	}

	s.SetDatasets([]models.Dataset{{Vertical: "racing"}})
	if got := s.GetSelectedVertical(); got != "racing" {
		t.Errorf("selected = %q, want racing fallback", got)
	}

	s.SetDatasets(nil)
	if got := s.GetSelectedVertical(); got != "" {
		t.Errorf("selected = %q, want empty", got)
	}
	if !s.GetLastUpdated().After(time.Time{}) {
		t.Error("LastUpdated should be set")
	}
}

func TestState_SelectedDataset(t *testing.T) {
	s := NewState()
	if _, ok := s.SelectedDataset(); ok {
		t.Error("no dataset should be selected")
	}

	s.SetDatasets([]models.Dataset{{Vertical: "rpg", Supported: true, Size: 10}})
	ds, ok := s.SelectedDataset()
	if !ok || ds.Vertical != "rpg" || ds.Size != 10 {
		t.Errorf("SelectedDataset() = %+v, %v", ds, ok)
	}

	list := s.GetDatasets()
	list[0].Vertical = "mutated"
	if s.GetDatasets()[0].Vertical != "rpg" {
		t.Error("GetDatasets should return a copy")
	}
	if s.GetDatasetCount() != 1 {
		t.Error("GetDatasetCount mismatch")
	}
}

func TestState_Analyses(t *testing.T) {
	s := NewState()
	s.SetAnalysis(nil)

	a := &models.Analysis{Dataset: models.Dataset{Vertical: "idle"}}
	s.SetAnalysis(a)
	if s.GetAnalysis("idle") != a {
		t.Error("GetAnalysis should return the stored analysis")
	}

	s.DropAnalysis("idle")
	if s.GetAnalysis("idle") != nil {
		t.Error("analysis should be dropped")
	}
}

func TestState_Stats(t *testing.T) {
	s := NewState()
	if s.GetStats() != nil {
		t.Error("Stats should be nil initially")
	}

	s.SetStats(services.StatsEvent{DatasetCount: 3, TotalBytes: 1024})
	stats := s.GetStats()
	if stats == nil || stats.DatasetCount != 3 || stats.TotalBytes != 1024 {
		t.Errorf("GetStats() = %+v", stats)
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "Test", time.Minute)
	if id == "" {
		t.Error("AddNotification returned empty ID")
	}
	if notifs := s.GetNotifications(); len(notifs) != 1 || notifs[0].Message != "Test" {
		t.Errorf("GetNotifications() = %+v", notifs)
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("notification should be removed")
	}

	for range 15 {
		s.AddNotification(NotificationInfo, "n", 0)
	}
	if got := len(s.GetNotifications()); got != maxNotifications {
		t.Errorf("notifications = %d, want %d", got, maxNotifications)
	}

	s.ClearAllNotifications()
	if len(s.GetNotifications()) != 0 {
		t.Error("notifications should be cleared")
	}
}

func TestState_ExpiredNotifications(t *testing.T) {
	s := NewState()
	s.AddNotification(NotificationInfo, "gone", time.Nanosecond)
	s.AddNotification(NotificationInfo, "stays", 0)
	time.Sleep(time.Millisecond)

	if notifs := s.GetNotifications(); len(notifs) != 1 || notifs[0].Message != "stays" {
		t.Errorf("GetNotifications() = %+v", notifs)
	}

	s.ClearExpiredNotifications()
	if len(s.notifications) != 1 {
		t.Errorf("expired notifications should be removed, got %d", len(s.notifications))
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("Loading...")
	s.SetLoadingNotification("Analyzing Puzzle...")

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("expected a single loading notification, got %d", len(notifs))
	}
	if notifs[0].ID != LoadingNotificationID || notifs[0].Message != "Analyzing Puzzle..." {
		t.Errorf("unexpected loading notification %+v", notifs[0])
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("loading notification should be cleared")
	}
}

func TestState_TimeSinceUpdate(t *testing.T) {
	s := NewState()
	if s.TimeSinceUpdate() != 0 {
		t.Error("TimeSinceUpdate should be 0 before any update")
	}
	s.SetDatasets(nil)
	if s.TimeSinceUpdate() < 0 {
		t.Error("TimeSinceUpdate should not be negative")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		typ  NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationLoading, "loading"},
		{NotificationType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestNotification_IsExpired(t *testing.T) {
	n := Notification{CreatedAt: time.Now().Add(-time.Minute), Duration: time.Second}
	if !n.IsExpired() {
		t.Error("notification should be expired")
	}
	n.Duration = 0
	if n.IsExpired() {
		t.Error("zero duration never expires")
	}
}
