package batch

import (
	"fmt"
	"io"
)

// flusher is implemented by buffered writers that need an explicit flush
// for each line to reach its destination.
type flusher interface {
	Flush() error
}

// emitter writes CSV lines one at a time, flushing after each so an
// interrupted batch leaves usable partial output. Field values are written
// as-is; file names are assumed not to contain the separator.
type emitter struct {
	w io.Writer
}

func newEmitter(w io.Writer) *emitter {
	return &emitter{w: w}
}

func (e *emitter) line(format string, args ...any) error {
	if _, err := fmt.Fprintf(e.w, format+"\n", args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if f, ok := e.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("failed to flush output: %w", err)
		}
	}
	return nil
}
