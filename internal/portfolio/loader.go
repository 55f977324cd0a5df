package portfolio

import (
	"encoding/json"
	"fmt"
	"os"

	"portfolio/internal/logging"
	"portfolio/pkg/fileops"
)

// DefaultMaxFileSize bounds the size of the data file read at startup.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Loader resolves and reads the portfolio data file.
type Loader struct {
	logger      *logging.AppLogger
	candidates  []string
	maxFileSize int64
}

// NewLoader creates a Loader probing candidates in order.
// A non-positive maxFileSize falls back to DefaultMaxFileSize.
func NewLoader(logger *logging.AppLogger, candidates []string, maxFileSize int64) *Loader {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Loader{
		logger:      logger,
		candidates:  candidates,
		maxFileSize: maxFileSize,
	}
}

// Resolve returns the first candidate path that exists as a regular file.
func (l *Loader) Resolve() (string, bool) {
	for _, path := range l.candidates {
		if fileops.FileExists(path) {
			l.logger.Debug("Portfolio data candidate found", "path", path)
			return path, true
		}
		l.logger.Debug("Portfolio data candidate missing", "path", path)
	}
	return "", false
}

// Load resolves the data file and parses it. It never fails: when no
// candidate exists, or the chosen file cannot be read or is not a JSON array
// of items, the failure is logged and an empty Dataset is returned.
func (l *Loader) Load() Dataset {
	path, ok := l.Resolve()
	if !ok {
		l.logger.Error("No portfolio data file found in any expected location",
			"candidates", l.candidates)
		return Dataset{}
	}

	ds, err := LoadFile(path, l.maxFileSize)
	if err != nil {
		l.logger.Error("Failed to load portfolio data", "path", path, "error", err)
		return Dataset{}
	}

	if len(ds.rejected) > 0 {
		l.logger.Warn("Skipped portfolio records that are not JSON objects",
			"count", len(ds.rejected), "records", ds.rejected)
	}
	if dups := ds.duplicateIDs(); len(dups) > 0 {
		l.logger.Warn("Portfolio data contains duplicate ids; lookups return the first match",
			"ids", dups)
	}

	l.logger.Info("Portfolio data loaded", "items", ds.Len(), "path", path)
	return ds
}

// LoadFile reads a single data file and decodes it as a JSON array of items.
// A record that is not an object is left out of the dataset; the rest load.
func LoadFile(path string, maxFileSize int64) (Dataset, error) {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}

	if err := fileops.ValidateFileReadable(path); err != nil {
		return Dataset{}, fmt.Errorf("data file not accessible: %w", err)
	}
	if err := fileops.ValidateFileSizeLimit(path, maxFileSize); err != nil {
		return Dataset{}, fmt.Errorf("data file rejected: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to read data file: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(content, &records); err != nil {
		return Dataset{}, fmt.Errorf("failed to parse data file: %w", err)
	}
	if records == nil {
		// "null" decodes without error but is not an array.
		return Dataset{}, fmt.Errorf("failed to parse data file: expected a JSON array")
	}

	ds := Dataset{items: make([]Item, 0, len(records))}
	for n, record := range records {
		var item Item
		if err := json.Unmarshal(record, &item); err != nil {
			ds.rejected = append(ds.rejected, fmt.Sprintf("record %d: %v", n, err))
			continue
		}
		ds.items = append(ds.items, item)
	}
	return ds, nil
}
