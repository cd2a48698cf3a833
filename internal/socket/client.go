// Package socket delivers one instruction to the remote executor over a
// websocket and streams back whatever the executor prints.
package socket

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Client sends instructions to a single executor endpoint.
// Each Deliver call owns its own connection; nothing is pooled.
type Client struct {
	endpoint string
	dialer   *websocket.Dialer
	log      log.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHandshakeTimeout bounds the opening handshake. Zero means no limit.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.dialer.HandshakeTimeout = d
	}
}

// WithLogger sets the logger used for connection lifecycle messages.
func WithLogger(l log.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a client for the given ws:// or wss:// endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	dialer := *websocket.DefaultDialer
	c := &Client{
		endpoint: endpoint,
		dialer:   &dialer,
		log:      log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL the client dials.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Deliver opens a connection, sends payload as one text message and streams
// every inbound message to sink until the peer closes or the connection
// fails. The stream outcome is reported through sink.Done and returned.
//
// Only dial and send failures are returned as errors; a stream that ends in
// an error is a Failed result, not an error. ctx bounds the dial only: once
// connected, the receive loop runs until the executor hangs up.
func (c *Client) Deliver(ctx context.Context, payload []byte, sink Sink) (Result, error) {
	logger := c.log.WithField("endpoint", c.endpoint)

	conn, resp, err := c.dialer.DialContext(ctx, c.endpoint, nil)
	if err != nil {
		if resp != nil {
			logger = logger.WithField("status", resp.Status)
		}
		logger.WithError(err).Debug("dial failed")
		return Result{}, errors.Wrapf(err, "dial %s", c.endpoint)
	}
	defer conn.Close()
	logger.Debug("connected")

	// Jobs can run for hours without output; never time out reads.
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return Result{}, errors.Wrap(err, "clear read deadline")
	}

	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return Result{}, errors.Wrap(err, "send instruction")
	}
	logger.WithField("bytes", len(payload)).Debug("instruction sent")

	res := receive(conn, sink)
	logger.WithField("outcome", res.Outcome.String()).Debug("stream ended")
	sink.Done(res)
	return res, nil
}

// reader is the subset of *websocket.Conn the receive loop needs.
type reader interface {
	ReadMessage() (int, []byte, error)
}

// receive forwards messages in arrival order until the read fails.
func receive(conn reader, sink Sink) Result {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return classify(err)
		}
		sink.Message(data)
	}
}

// classify maps the terminal read error onto a Result. Normal closure and
// going-away are the executor finishing cleanly; everything else is a
// failure.
func classify(err error) Result {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return Result{Outcome: Closed, Err: err}
	}
	return Result{Outcome: Failed, Err: err}
}
