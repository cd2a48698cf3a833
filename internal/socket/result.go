package socket

import (
	"fmt"
	"io"
)

// Outcome identifies how a stream ended.
type Outcome int

const (
	// Closed means the executor closed the connection cleanly.
	Closed Outcome = iota

	// Failed means the connection broke or closed abnormally.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Closed:
		return "closed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the terminal state of a stream. Err is the close frame or
// transport error that ended it and is set for both outcomes.
type Result struct {
	Outcome Outcome
	Err     error
}

// OK reports whether the stream ended with a clean close.
func (r Result) OK() bool {
	return r.Outcome == Closed
}

// Sink receives streamed messages and the final result.
type Sink interface {
	Message(data []byte)
	Done(r Result)
}

// PrintSink writes each message prefixed with "From socket: " and no added
// newline, then one status line when the stream ends.
type PrintSink struct {
	W io.Writer

	// Style decorates the status line. Nil prints it plain.
	Style func(o Outcome, line string) string
}

// Message implements Sink.
func (p *PrintSink) Message(data []byte) {
	fmt.Fprintf(p.W, "From socket: %s", data)
}

// Done implements Sink.
func (p *PrintSink) Done(r Result) {
	var line string
	if r.OK() {
		line = fmt.Sprintf("Success: %v", r.Err)
	} else {
		line = fmt.Sprintf("Error: %v", r.Err)
	}
	if p.Style != nil {
		line = p.Style(r.Outcome, line)
	}
	fmt.Fprintln(p.W, line)
}
