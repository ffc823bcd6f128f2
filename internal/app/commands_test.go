package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/forge-insights-tui/internal/services"
)

func TestTickCmd(t *testing.T) {
	if cmd := tickCmd(time.Millisecond); cmd == nil {
		t.Error("tickCmd returned nil")
	}
	if cmd := defaultTickCmd(); cmd == nil {
		t.Error("defaultTickCmd returned nil")
	}
}

func TestNotifyCmds(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) tea.Cmd
		want NotificationType
		dur  time.Duration
	}{
		{"Success", notifySuccessCmd, NotificationSuccess, DefaultNotificationDuration},
		{"Error", notifyErrorCmd, NotificationError, LongNotificationDuration},
		{"Warning", notifyWarningCmd, NotificationWarning, DefaultNotificationDuration},
		{"Info", notifyInfoCmd, NotificationInfo, QuickNotificationDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.fn("msg")()

			addMsg, ok := msg.(AddNotificationMsg)
			if !ok {
				t.Fatalf("Expected AddNotificationMsg, got %T", msg)
			}
			if addMsg.Type != tt.want {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.want)
			}
			if addMsg.Message != "msg" {
				t.Errorf("Message = %q, want msg", addMsg.Message)
			}
			if addMsg.Duration != tt.dur {
				t.Errorf("Duration = %v, want %v", addMsg.Duration, tt.dur)
			}
		})
	}
}

func TestClearNotificationCmd(t *testing.T) {
	msg := clearNotificationCmd("id-1", time.Millisecond)()
	if rm, ok := msg.(RemoveNotificationMsg); !ok || rm.ID != "id-1" {
		t.Errorf("unexpected message %#v", msg)
	}
}

func TestLoadDatasetsCmd(t *testing.T) {
	mgr := newTestManager(t)

	msg, ok := loadDatasetsCmd(mgr)().(DatasetsLoadedMsg)
	if !ok {
		t.Fatal("expected DatasetsLoadedMsg")
	}
	if len(msg.Datasets) != 1 || msg.Stats.SupportedCount != 1 {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestAnalyzeCmd_Cancelled(t *testing.T) {
	mgr := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg := analyzeCmd(ctx, mgr, "shooter")().(AnalysisLoadedMsg)
	if msg.Vertical != "shooter" {
		t.Errorf("Vertical = %q", msg.Vertical)
	}
	if msg.Err == nil {
		t.Error("cancelled analysis should fail")
	}
}

func TestRescanCmd(t *testing.T) {
	mgr := newTestManager(t)
	msg, ok := rescanCmd(mgr)().(RescanResultMsg)
	if !ok || msg.Err != nil {
		t.Errorf("unexpected message %#v", msg)
	}
}

func TestWaitForServiceEventCmd(t *testing.T) {
	ch := make(chan services.ServiceEvent, 1)
	ch <- services.StatsEvent{DatasetCount: 2}

	msg, ok := waitForServiceEventCmd(ch)().(ServiceEventMsg)
	if !ok {
		t.Fatal("expected ServiceEventMsg")
	}
	if stats, ok := msg.Event.(services.StatsEvent); !ok || stats.DatasetCount != 2 {
		t.Errorf("unexpected event %#v", msg.Event)
	}

	close(ch)
	if msg := waitForServiceEventCmd(ch)(); msg != nil {
		t.Errorf("closed channel should yield nil, got %#v", msg)
	}
}

func TestSubscribeToServicesCmd(t *testing.T) {
	mgr := newTestManager(t)

	msg, ok := subscribeToServicesCmd(mgr)().(SubscriptionEventMsg)
	if !ok || msg.Channel == nil {
		t.Fatalf("unexpected message %#v", msg)
	}
	mgr.Unsubscribe(msg.Channel)
}
