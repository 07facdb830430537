// Package audit records directory changes.
//
// The directory manager appends an Entry for every successful mutation to the Sink it
// was given. Retention is a property of the sink the caller chooses: Ring keeps the
// newest n entries in memory, LogSink forwards to zerolog, SinkFunc adapts any function.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry describes one change.
type Entry struct {
	ID            uuid.UUID `json:"id"`
	Table         string    `json:"table"`
	ReferenceID   string    `json:"reference_id"`
	Message       string    `json:"message"`
	CreatedBy     uuid.UUID `json:"created_by"`
	CreatedByName string    `json:"created_by_name"`
	Created       time.Time `json:"created"`
}

// Sink receives change entries. Implementations must be safe for concurrent use.
type Sink interface {
	Record(ctx context.Context, entry Entry) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, entry Entry) error

// Record implements Sink.
func (f SinkFunc) Record(ctx context.Context, entry Entry) error {
	if f == nil {
		return nil
	}

	return f(ctx, entry)
}

type nopSink struct{}

func (nopSink) Record(context.Context, Entry) error { return nil }

// Nop discards every entry.
func Nop() Sink {
	return nopSink{}
}

// Normalize returns s, or Nop if s is nil.
func Normalize(s Sink) Sink {
	if s == nil {
		return Nop()
	}

	return s
}
