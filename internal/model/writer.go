package model

// Writer is an append-only sink for summary records. Each record is one
// self-delimited line; implementations make it durable before returning.
type Writer interface {
	// WriteRecord appends one record and flushes it.
	WriteRecord(record []byte) error

	// Close releases the underlying resource.
	Close() error
}
