// Package datasets discovers vertical dataset files in a directory, watches
// it for changes and loads datasets into memory.
package datasets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/forge-insights-tui/internal/db"
	"github.com/j-veylop/forge-insights-tui/internal/logger"
	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/table"
)

// Event represents a dataset service event.
type Event struct {
	Type    EventType
	Error   error
	Dataset *models.Dataset
}

// EventType defines the type of dataset event.
type EventType int

const (
	EventDatasetsLoaded EventType = iota
	EventDatasetsChanged
	EventDatasetAdded
	EventDatasetRemoved
	EventDatasetUpdated
	EventError
)

// Options configures a Service.
type Options struct {
	// Watch enables fsnotify on the directory.
	Watch bool
	// Debounce coalesces bursts of file events. Zero uses 100ms.
	Debounce time.Duration
	// Supported reports whether strategies exist for a vertical.
	Supported func(vertical string) bool
}

// Service keeps the list of datasets in a directory current.
type Service struct {
	mu            sync.RWMutex
	dir           string
	opts          Options
	datasets      []models.Dataset
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	stopOnce      sync.Once
	debounceTimer *time.Timer
}

const defaultDebounce = 100 * time.Millisecond

// New scans dir and, when enabled, starts watching it.
func New(dir string, opts Options) (*Service, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}

	s := &Service{
		dir:       dir,
		opts:      opts,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	found, err := s.scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan data directory: %w", err)
	}
	s.datasets = found

	if opts.Watch {
		if err := s.startWatcher(); err != nil {
			return nil, fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	s.sendEvent(Event{Type: EventDatasetsLoaded})

	return s, nil
}

// Dir returns the watched directory.
func (s *Service) Dir() string {
	return s.dir
}

// Events returns the event channel for subscribing to dataset changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// List returns a copy of all datasets, ordered by vertical.
func (s *Service) List() []models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.datasets)
}

// Count returns the number of datasets.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}

// Get returns the dataset of a vertical. When a vertical has several files,
// CSV wins over SQLite.
func (s *Service) Get(vertical string) (models.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ds := range s.datasets {
		if ds.Vertical == vertical {
			return ds, true
		}
	}
	return models.Dataset{}, false
}

// Rescan re-reads the directory and emits added, removed and updated events.
func (s *Service) Rescan() error {
	found, err := s.scan()
	if err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return err
	}

	s.mu.Lock()
	old := s.datasets
	s.datasets = found
	s.mu.Unlock()

	added, removed, updated := diff(old, found)
	for i := range added {
		s.sendEvent(Event{Type: EventDatasetAdded, Dataset: &added[i]})
	}
	for i := range removed {
		s.sendEvent(Event{Type: EventDatasetRemoved, Dataset: &removed[i]})
	}
	for i := range updated {
		s.sendEvent(Event{Type: EventDatasetUpdated, Dataset: &updated[i]})
	}
	if len(added)+len(removed)+len(updated) > 0 {
		s.sendEvent(Event{Type: EventDatasetsChanged})
	}
	return nil
}

// Load reads a dataset into memory. limit > 0 keeps only the first rows.
func (s *Service) Load(ctx context.Context, ds models.Dataset, limit int) (*table.Table, error) {
	start := time.Now()

	var (
		t   *table.Table
		err error
	)
	switch ds.Format {
	case models.FormatCSV:
		t, err = table.LoadCSV(ds.Path)
		if err == nil && limit > 0 {
			t = t.Head(limit)
		}
	case models.FormatSQLite:
		t, err = loadSQLite(ctx, ds.Path, limit)
	default:
		err = fmt.Errorf("unsupported dataset format %s", ds.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ds.Vertical, err)
	}

	logger.Debug("dataset loaded",
		"vertical", ds.Vertical,
		"format", ds.Format.String(),
		"rows", t.Len(),
		"took", time.Since(start))
	return t, nil
}

func loadSQLite(ctx context.Context, path string, limit int) (*table.Table, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = database.Close() }()
	return database.LoadEvents(ctx, limit)
}

// scan lists dataset files, skipping dotfiles and unknown extensions.
func (s *Service) scan() ([]models.Dataset, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var found []models.Dataset
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ds, ok := models.DatasetFromPath(filepath.Join(s.dir, e.Name()))
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		ds.Size = info.Size()
		ds.ModTime = info.ModTime()
		if s.opts.Supported != nil {
			ds.Supported = s.opts.Supported(ds.Vertical)
		}
		found = append(found, ds)
	}

	slices.SortStableFunc(found, func(a, b models.Dataset) int {
		if c := strings.Compare(a.Vertical, b.Vertical); c != 0 {
			return c
		}
		if a.Format != b.Format {
			return int(a.Format) - int(b.Format)
		}
		return strings.Compare(a.Path, b.Path)
	})
	return found, nil
}

func diff(old, cur []models.Dataset) (added, removed, updated []models.Dataset) {
	byPath := make(map[string]models.Dataset, len(old))
	for _, ds := range old {
		byPath[ds.Path] = ds
	}
	for _, ds := range cur {
		prev, ok := byPath[ds.Path]
		switch {
		case !ok:
			added = append(added, ds)
		case prev.Size != ds.Size || !prev.ModTime.Equal(ds.ModTime):
			updated = append(updated, ds)
		}
		delete(byPath, ds.Path)
	}
	for _, ds := range old {
		if _, gone := byPath[ds.Path]; gone {
			removed = append(removed, ds)
		}
	}
	return added, removed, updated
}

// startWatcher starts the file system watcher.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	if err := watcher.Add(s.dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if _, isDataset := models.DatasetFromPath(event.Name); !isDataset {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.mu.Lock()
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(s.opts.Debounce, func() {
					_ = s.Rescan()
				})
				s.mu.Unlock()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the watcher.
func (s *Service) Close() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
