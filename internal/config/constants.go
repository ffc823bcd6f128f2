package config

import "time"

// Environment variable names.
const (
	envDataDir        = "DATA_DIR"
	envGoalsPath      = "GOALS_PATH"
	envWatchDatasets  = "WATCH_DATASETS"
	envDesktopNotify  = "DESKTOP_NOTIFY"
	envPreviewRows    = "PREVIEW_ROWS"
	envReloadDebounce = "RELOAD_DEBOUNCE"
	envLogLevel       = "LOG_LEVEL"
	envLogFile        = "LOG_FILE"
)

// Default values
const (
	defaultDataDir        = "dummy_data"
	defaultPreviewRows    = 100
	defaultReloadDebounce = 500 * time.Millisecond
	defaultLogLevel       = "info"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}
