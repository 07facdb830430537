package audit

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSink writes entries as info events.
type LogSink struct {
	Logger zerolog.Logger
}

// Record implements Sink.
func (s LogSink) Record(_ context.Context, e Entry) error {
	s.Logger.Info().
		Str("table", e.Table).
		Str("reference_id", e.ReferenceID).
		Str("created_by", e.CreatedByName).
		Time("created", e.Created).
		Msg(e.Message)

	return nil
}

// Multi fans an entry out to every sink and returns the first error.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, e Entry) error {
		var first error

		for _, s := range sinks {
			if s == nil {
				continue
			}

			if err := s.Record(ctx, e); err != nil && first == nil {
				first = err
			}
		}

		return first
	})
}
