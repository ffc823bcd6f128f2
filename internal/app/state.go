// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/services"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial  bool
	Datasets bool
	Analysis bool
}

// State is the application state shared between the root model and tabs.
type State struct {
	mu sync.RWMutex

	Datasets         []models.Dataset
	Stats            *services.StatsEvent
	Analyses         map[string]*models.Analysis
	SelectedVertical string

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty state that is still loading.
func NewState() *State {
	return &State{
		Datasets:      make([]models.Dataset, 0),
		Analyses:      make(map[string]*models.Analysis),
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "datasets":
		s.Loading.Datasets = loading
	case "analysis":
		s.Loading.Analysis = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial || s.Loading.Datasets || s.Loading.Analysis
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// IsAnalyzing returns true while an analysis is running.
func (s *State) IsAnalyzing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Analysis
}

// GetLoadingResources returns a list of currently loading resources.
func (s *State) GetLoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resources []string
	if s.Loading.Initial {
		resources = append(resources, "initial")
	}
	if s.Loading.Datasets {
		resources = append(resources, "datasets")
	}
	if s.Loading.Analysis {
		resources = append(resources, "analysis")
	}
	return resources
}

// SetDatasets replaces the dataset list. The selection is kept when its
// dataset still exists, otherwise the first supported dataset is selected.
func (s *State) SetDatasets(list []models.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Datasets = list
	s.LastUpdated = time.Now()

	for _, ds := range list {
		if ds.Vertical == s.SelectedVertical {
			return
		}
	}

	s.SelectedVertical = ""
	for _, ds := range list {
		if ds.Supported {
			s.SelectedVertical = ds.Vertical
			return
		}
	}
	if len(list) > 0 {
		s.SelectedVertical = list[0].Vertical
	}
}

// GetDatasets returns a copy of the dataset list.
func (s *State) GetDatasets() []models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Dataset, len(s.Datasets))
	copy(list, s.Datasets)
	return list
}

// GetDatasetCount returns the number of datasets.
func (s *State) GetDatasetCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Datasets)
}

// SelectVertical marks a vertical as the one shown by the insights tab.
func (s *State) SelectVertical(vertical string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SelectedVertical = vertical
}

// GetSelectedVertical returns the selected vertical.
func (s *State) GetSelectedVertical() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SelectedVertical
}

// SelectedDataset returns the dataset of the selected vertical.
func (s *State) SelectedDataset() (models.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ds := range s.Datasets {
		if ds.Vertical == s.SelectedVertical {
			return ds, true
		}
	}
	return models.Dataset{}, false
}

// SetAnalysis stores the analysis of a dataset.
func (s *State) SetAnalysis(a *models.Analysis) {
	if a == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Analyses[a.Dataset.Vertical] = a
	s.LastUpdated = time.Now()
}

// GetAnalysis returns the stored analysis of a vertical, or nil.
func (s *State) GetAnalysis(vertical string) *models.Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Analyses[vertical]
}

// DropAnalysis forgets the analysis of a vertical.
func (s *State) DropAnalysis(vertical string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Analyses, vertical)
}

// SetStats updates the statistics.
func (s *State) SetStats(stats services.StatsEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stats = &stats
}

// GetStats returns the current statistics.
func (s *State) GetStats() *services.StatsEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Stats
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}

// GetLastUpdated returns the last time the state was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
