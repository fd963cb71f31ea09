// Package fs provides file-based record and page storage.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/fwojciec/adlib"
	"github.com/google/uuid"
)

// Ensure Writer implements adlib.RecordWriter at compile time.
var _ adlib.RecordWriter = (*Writer)(nil)

// Writer appends records to a newline-delimited JSON file, one flat
// object per line. The file is opened in append mode so successive
// crawls accumulate into the same output.
//
// Writer is safe for concurrent use.
type Writer struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// NewWriter opens (or creates) the NDJSON file at path for appending.
// Close must be called when the Writer is no longer needed.
func NewWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &Writer{f: f, path: path}, nil
}

// CreateRecord validates the record, assigns its ID, and appends it as
// one JSON line.
func (w *Writer) CreateRecord(ctx context.Context, rec *adlib.AdRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	if rec.CrawledAt.IsZero() {
		rec.CrawledAt = time.Now().UTC()
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()

	_, err = w.f.Write(line)
	return err
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	return w.f.Close()
}
