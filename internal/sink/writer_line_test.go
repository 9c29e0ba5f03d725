package sink

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLineWriterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regularity", "16_bytes_to_range_to_incl_1023")

	w, err := NewLineWriter(path)
	if err != nil {
		t.Fatalf("NewLineWriter failed: %v", err)
	}
	if err := w.WriteRecord([]byte("{\"algo\": \"a\", \"num keys\": 1}\n")); err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopening must append, not truncate.
	w, err = NewLineWriter(path)
	if err != nil {
		t.Fatalf("NewLineWriter failed on reopen: %v", err)
	}
	if err := w.WriteRecord([]byte("{\"algo\": \"a\", \"num keys\": 2}\n")); err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read result file: %v", err)
	}
	want := "{\"algo\": \"a\", \"num keys\": 1}\n{\"algo\": \"a\", \"num keys\": 2}\n"
	if string(data) != want {
		t.Fatalf("result file content:\n%q\nwant:\n%q", data, want)
	}
}

func TestLineWriterFlushesEachRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	w, err := NewLineWriter(path)
	if err != nil {
		t.Fatalf("NewLineWriter failed: %v", err)
	}
	defer w.Close()

	if err := w.WriteRecord([]byte("line\n")); err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}
	// The record must be visible before Close.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read result file: %v", err)
	}
	if string(data) != "line\n" {
		t.Fatalf("record not flushed, file contains %q", data)
	}
}
