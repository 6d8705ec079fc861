package event

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// DeadLetterSchemaVersion is the version of the dead-letter line format.
// Version 2 lifts user_id and source out of the payload.
const DeadLetterSchemaVersion = "2"

// DeadLetterEntry is one line of the dead-letter file. Rewards that never
// reached the bus can be found by user_id.
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	UserID        string    `json:"user_id,omitempty"`
	Source        string    `json:"source,omitempty"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
	Event         Event     `json:"event"`
}

// DeadLetterWriter appends undeliverable events as JSON lines
type DeadLetterWriter struct {
	mu      sync.Mutex
	out     io.WriteCloser
	enc     *json.Encoder
	now     func() time.Time
	written int
}

// NewDeadLetterWriter opens (or creates) path for appending
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgOpenDeadLetter, path, err)
	}
	return newDeadLetterWriter(f), nil
}

func newDeadLetterWriter(out io.WriteCloser) *DeadLetterWriter {
	return &DeadLetterWriter{out: out, enc: json.NewEncoder(out), now: time.Now}
}

// Write appends one event that exhausted its delivery attempts
func (d *DeadLetterWriter) Write(event Event, attempts int, lastError error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		UserID:        event.UserID(),
		Source:        event.Source(),
		Attempts:      attempts,
		Event:         event,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	entry.Timestamp = d.now()
	if err := d.enc.Encode(entry); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodeDeadLetter, err)
	}
	d.written++

	slog.Warn(LogMsgEventDeadLettered,
		"event_type", event.Type,
		"user_id", entry.UserID,
		"attempts", attempts,
		"error", entry.LastError)
	return nil
}

// Written returns how many entries this writer has appended
func (d *DeadLetterWriter) Written() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.written
}

// Close closes the underlying file
func (d *DeadLetterWriter) Close() error {
	return d.out.Close()
}
