package socket

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "outcome(7)", Outcome(7).String())
}

func TestPrintSink_MessageHasNoExtraNewline(t *testing.T) {
	var out bytes.Buffer
	sink := &PrintSink{W: &out}
	sink.Message([]byte("line one\n"))
	sink.Message([]byte("line two"))
	assert.Equal(t, "From socket: line one\nFrom socket: line two", out.String())
}

func TestPrintSink_Done(t *testing.T) {
	var out bytes.Buffer
	sink := &PrintSink{W: &out}

	sink.Done(Result{Outcome: Closed, Err: &websocket.CloseError{Code: websocket.CloseNormalClosure, Text: "bye"}})
	sink.Done(Result{Outcome: Failed, Err: errors.New("connection reset")})

	assert.Equal(t,
		"Success: websocket: close 1000 (normal): bye\nError: connection reset\n",
		out.String())
}

func TestPrintSink_Style(t *testing.T) {
	var out bytes.Buffer
	sink := &PrintSink{W: &out, Style: func(o Outcome, line string) string {
		return "[" + o.String() + "] " + line
	}}
	sink.Done(Result{Outcome: Failed, Err: errors.New("x")})
	assert.Equal(t, "[failed] Error: x\n", out.String())
}
