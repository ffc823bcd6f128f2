package models

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// DatasetFormat identifies how a dataset file is read.
type DatasetFormat int

const (
	// FormatCSV is a header-row delimited text file.
	FormatCSV DatasetFormat = iota
	// FormatSQLite is a SQLite database with an events table.
	FormatSQLite
)

// String returns the display name for a dataset format.
func (f DatasetFormat) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatSQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// Dataset describes one dataset file discovered in the data directory.
type Dataset struct {
	Vertical string
	Path     string
	Format   DatasetFormat
	Size     int64
	ModTime  time.Time
	// Supported is true when the registry knows strategies for Vertical.
	Supported bool
}

// DisplayName returns the capitalized vertical name.
func (d Dataset) DisplayName() string {
	return DisplayName(d.Vertical)
}

// DisplayName capitalizes the first letter of a vertical identifier.
func DisplayName(vertical string) string {
	if vertical == "" {
		return ""
	}
	r := []rune(vertical)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// DatasetFromPath derives a dataset descriptor from a file name. The second
// return value is false for files that are not datasets.
func DatasetFromPath(path string) (Dataset, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return Dataset{}, false
	}
	ext := strings.ToLower(filepath.Ext(base))
	var format DatasetFormat
	switch ext {
	case ".csv":
		format = FormatCSV
	case ".db", ".sqlite", ".sqlite3":
		format = FormatSQLite
	default:
		return Dataset{}, false
	}
	vertical := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	if vertical == "" {
		return Dataset{}, false
	}
	return Dataset{Vertical: vertical, Path: path, Format: format}, true
}
