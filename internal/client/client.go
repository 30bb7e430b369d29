// Package client is the caller-facing surface for device requests.
//
// Every call is one stateless exchange: encode, open the node, write, seek to
// the start, read the length-prefixed reply, close. Nothing is cached between
// calls and no call is retried.
package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/rqstctl/internal/device"
	"github.com/danmuck/rqstctl/internal/observability"
	"github.com/danmuck/rqstctl/internal/protocol"
	"github.com/danmuck/rqstctl/internal/protocol/frame"
)

// Client sends commands to one device node.
type Client struct {
	path    string
	open    device.OpenFunc
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithOpener replaces the function used to acquire the device channel.
func WithOpener(open device.OpenFunc) Option {
	return func(c *Client) {
		if open != nil {
			c.open = open
		}
	}
}

// WithLogger sets the logger used for exchange records.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics records every exchange into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a client for the node at path. An empty path selects
// device.DefaultPath.
func New(path string, opts ...Option) *Client {
	if path == "" {
		path = device.DefaultPath
	}
	c := &Client{
		path:   path,
		open:   device.OpenNode,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("device", c.path).Logger()
	return c
}

// Path returns the device node path.
func (c *Client) Path() string {
	return c.path
}

// Send performs one exchange for cmd and returns the raw response payload.
func (c *Client) Send(cmd protocol.Command) ([]byte, error) {
	name := commandName(cmd)
	logger := c.logger.With().
		Str("invocation", uuid.NewString()).
		Str("command", name).
		Logger()

	start := time.Now()
	req, err := cmd.Encode()
	if err != nil {
		c.metrics.RecordExchange(name, observability.ResultEncoding, time.Since(start), 0)
		logger.Error().Err(err).Msg("encode failed")
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	logger.Debug().Str("request", protocol.FormatHex(req)).Msg("exchange start")

	resp, err := device.Exchange(c.open, c.path, req)
	elapsed := time.Since(start)
	c.metrics.RecordExchange(name, classify(err), elapsed, len(resp))
	if err != nil {
		logger.Error().Err(err).Dur("duration", elapsed).Msg("exchange failed")
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	logger.Info().
		Int("response_len", len(resp)).
		Dur("duration", elapsed).
		Msg("exchange complete")
	logger.Debug().Str("response", protocol.FormatHex(resp)).Msg("exchange response")
	return resp, nil
}

// PerformanceState requests a performance state change.
func (c *Client) PerformanceState(state uint8) ([]byte, error) {
	return c.Send(protocol.PerformanceState(state))
}

// DetachLock locks the detach latch.
func (c *Client) DetachLock() ([]byte, error) {
	return c.Send(protocol.DetachLock())
}

// DetachUnlock unlocks the detach latch.
func (c *Client) DetachUnlock() ([]byte, error) {
	return c.Send(protocol.DetachUnlock())
}

// DetachAbort aborts a pending detach.
func (c *Client) DetachAbort() ([]byte, error) {
	return c.Send(protocol.DetachAbort())
}

// DetachAck acknowledges a detach request.
func (c *Client) DetachAck() ([]byte, error) {
	return c.Send(protocol.DetachAck())
}

func commandName(cmd protocol.Command) string {
	if cmd.Name == "" {
		return "raw"
	}
	return cmd.Name
}

func classify(err error) string {
	switch {
	case err == nil:
		return observability.ResultOK
	case errors.Is(err, frame.ErrPayloadTooLarge):
		return observability.ResultEncoding
	case errors.Is(err, frame.ErrShortRead):
		return observability.ResultShort
	case errors.Is(err, device.ErrChannel):
		return observability.ResultChannel
	default:
		return observability.ResultError
	}
}
