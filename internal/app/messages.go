package app

import (
	"time"

	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// DatasetsLoadedMsg contains the dataset list and global statistics.
type DatasetsLoadedMsg struct {
	Datasets []models.Dataset
	Stats    services.StatsEvent
}

// AnalyzeMsg requests an analysis of a vertical's dataset.
type AnalyzeMsg struct {
	Vertical string
}

// AnalysisLoadedMsg carries a finished analysis or the error that stopped it.
type AnalysisLoadedMsg struct {
	Vertical string
	Analysis *models.Analysis
	Err      error
}

// RefreshMsg requests a rescan of the data directory.
type RefreshMsg struct{}

// RescanResultMsg carries the outcome of a rescan.
type RescanResultMsg struct {
	Err error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearNotificationsMsg requests clearing all notifications.
type ClearNotificationsMsg struct{}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}
