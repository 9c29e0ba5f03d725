// Package sink provides the summary-record sinks: an append-only line file
// and an optional NATS publisher. Both implement model.Writer.
package sink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// LineWriter appends summary records to a file, flushing after every record
// so that anything emitted survives an external kill.
type LineWriter struct {
	file *os.File
	buf  *bufio.Writer
}

// NewLineWriter opens path for appending, creating parent directories as
// needed.
func NewLineWriter(path string) (*LineWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create result directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open result file '%s': %w", path, err)
	}
	return &LineWriter{file: file, buf: bufio.NewWriter(file)}, nil
}

// WriteRecord appends one record and flushes it.
func (w *LineWriter) WriteRecord(record []byte) error {
	if _, err := w.buf.Write(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush record: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *LineWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
