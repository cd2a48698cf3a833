package socket

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// recordingSink collects everything a stream produces.
type recordingSink struct {
	messages []string
	results  []Result
}

func (s *recordingSink) Message(data []byte) { s.messages = append(s.messages, string(data)) }
func (s *recordingSink) Done(r Result)       { s.results = append(s.results, r) }

// startExecutor runs a websocket server that hands the first received
// message to got and then runs script against the connection.
func startExecutor(t *testing.T, script func(conn *websocket.Conn)) (string, <-chan string) {
	t.Helper()
	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Errorf("server read failed: %v", err)
			conn.Close()
			return
		}
		got <- string(msg)
		script(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http"), got
}

func closeNormally(conn *websocket.Conn) {
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
	// Wait for the client's close reply before tearing down.
	conn.SetReadDeadline(time.Now().Add(time.Second))
	conn.ReadMessage()
	conn.Close()
}

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDeliver_ImmediateCleanClose(t *testing.T) {
	endpoint, got := startExecutor(t, closeNormally)

	sink := &recordingSink{}
	res, err := NewClient(endpoint, WithLogger(quietLogger())).Deliver(context.Background(), []byte(`{"cmd":"true"}`), sink)
	require.NoError(t, err)

	assert.Equal(t, `{"cmd":"true"}`, <-got)
	assert.Equal(t, Closed, res.Outcome)
	assert.True(t, res.OK())
	assert.Empty(t, sink.messages)
	require.Len(t, sink.results, 1)
	assert.Equal(t, Closed, sink.results[0].Outcome)
}

func TestDeliver_StreamsMessagesInOrder(t *testing.T) {
	endpoint, _ := startExecutor(t, func(conn *websocket.Conn) {
		for _, line := range []string{"step 1\n", "step 2\n", "step 3\n"} {
			conn.WriteMessage(websocket.TextMessage, []byte(line))
		}
		closeNormally(conn)
	})

	sink := &recordingSink{}
	res, err := NewClient(endpoint, WithLogger(quietLogger())).Deliver(context.Background(), []byte("{}"), sink)
	require.NoError(t, err)

	assert.Equal(t, Closed, res.Outcome)
	assert.Equal(t, []string{"step 1\n", "step 2\n", "step 3\n"}, sink.messages)
}

func TestDeliver_DropMidStream(t *testing.T) {
	endpoint, _ := startExecutor(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte("partial\n"))
		// Close the TCP connection without a close frame.
		conn.UnderlyingConn().Close()
	})

	var out bytes.Buffer
	res, err := NewClient(endpoint, WithLogger(quietLogger())).Deliver(context.Background(), []byte("{}"), &PrintSink{W: &out})
	require.NoError(t, err)

	assert.Equal(t, Failed, res.Outcome)
	assert.False(t, res.OK())
	require.Error(t, res.Err)
	assert.True(t, strings.HasPrefix(out.String(), "From socket: partial\nError: "), out.String())
}

func TestDeliver_AbnormalCloseCodeFails(t *testing.T) {
	endpoint, _ := startExecutor(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "boom"))
		conn.Close()
	})

	sink := &recordingSink{}
	res, err := NewClient(endpoint, WithLogger(quietLogger())).Deliver(context.Background(), []byte("{}"), sink)
	require.NoError(t, err)
	assert.Equal(t, Failed, res.Outcome)
	assert.True(t, websocket.IsCloseError(res.Err, websocket.CloseInternalServerErr))
}

func TestDeliver_DialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	sink := &recordingSink{}
	_, err := NewClient(endpoint, WithLogger(quietLogger()), WithHandshakeTimeout(time.Second)).
		Deliver(context.Background(), []byte("{}"), sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial "+endpoint)
	assert.Empty(t, sink.results)
}

func TestDeliver_HandshakeRejected(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	_, err := NewClient("ws"+strings.TrimPrefix(srv.URL, "http"), WithLogger(quietLogger())).
		Deliver(context.Background(), []byte("{}"), &recordingSink{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, websocket.ErrBadHandshake))
}

func TestNewClient_Options(t *testing.T) {
	c := NewClient("ws://localhost:8765", WithHandshakeTimeout(3*time.Second), WithLogger(nil))
	assert.Equal(t, "ws://localhost:8765", c.Endpoint())
	assert.Equal(t, 3*time.Second, c.dialer.HandshakeTimeout)
	assert.NotNil(t, c.log)
	// The shared default dialer must not be mutated.
	assert.NotEqual(t, 3*time.Second, websocket.DefaultDialer.HandshakeTimeout)
}

type scriptedReader struct {
	frames []string
	err    error
}

func (r *scriptedReader) ReadMessage() (int, []byte, error) {
	if len(r.frames) == 0 {
		return 0, nil, r.err
	}
	f := r.frames[0]
	r.frames = r.frames[1:]
	return websocket.TextMessage, []byte(f), nil
}

func TestReceive_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{"normal closure", &websocket.CloseError{Code: websocket.CloseNormalClosure}, Closed},
		{"going away", &websocket.CloseError{Code: websocket.CloseGoingAway}, Closed},
		{"abnormal closure", &websocket.CloseError{Code: websocket.CloseAbnormalClosure}, Failed},
		{"transport error", io.ErrUnexpectedEOF, Failed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			res := receive(&scriptedReader{frames: []string{"a", "b"}, err: tt.err}, sink)
			assert.Equal(t, tt.want, res.Outcome)
			assert.Equal(t, tt.err, res.Err)
			assert.Equal(t, []string{"a", "b"}, sink.messages)
		})
	}
}
