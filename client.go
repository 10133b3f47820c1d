package logic

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/storborg/gologic/wire"
)

// DefaultAddr is the address the Logic software listens on when the
// scripting socket is enabled.
const DefaultAddr = "127.0.0.1:10429"

// InterfaceVersion is the version of the scripting interface this client
// speaks.
const InterfaceVersion = "1.1.32"

// A Client is a connected session to the Logic software's scripting socket.
//
// The socket carries one command at a time; methods must not be called
// concurrently.
type Client struct {
	conn    net.Conn
	logger  *zap.Logger
	backoff func() backoff.BackOff
}

type options struct {
	logger  *zap.Logger
	backoff func() backoff.BackOff
}

// An Option configures a Client.
type Option func(*options)

// WithLogger sets the logger used for debug logging of socket traffic. The
// default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithBackoff overrides the retry policy used while connecting and while
// polling for processing completion.
func WithBackoff(algo func() backoff.BackOff) Option {
	return func(o *options) { o.backoff = algo }
}

// Dial connects to the scripting socket at addr. If addr is empty,
// DefaultAddr is used.
func Dial(addr string, opts ...Option) (*Client, error) {
	return DialContext(context.Background(), addr, opts...)
}

// DialContext connects to the scripting socket at addr, retrying with
// exponential backoff until the context is done. The Logic software accepts
// connections only once its UI has started, so a retry loop lets callers
// launch both together.
func DialContext(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	o := options{
		logger: zap.NewNop(),
		backoff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if addr == "" {
		addr = DefaultAddr
	}

	var conn net.Conn
	op := func() error {
		var d net.Dialer
		c, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return err
		}
		conn = c
		return nil
	}
	notify := func(err error, dur time.Duration) {
		o.logger.Debug("Retrying connect", zap.Error(err), zap.Duration("duration", dur))
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(o.backoff(), ctx), notify); err != nil {
		return nil, errors.Wrapf(err, "connect to %s", addr)
	}
	o.logger.Debug("Connected", zap.String("addr", addr))

	return &Client{conn: conn, logger: o.logger, backoff: o.backoff}, nil
}

// Close closes the connection to the socket.
func (c *Client) Close() error {
	return c.conn.Close()
}

// command sends a command and returns the payload lines of an ACK reply. A
// NAK reply becomes a CommandError, an unrecognizable reply an
// InvalidResponseError. The context deadline, if any, is applied to the
// socket.
func (c *Client) command(ctx context.Context, name string, args ...string) ([]string, error) {
	deadline, _ := ctx.Deadline()
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, errors.Wrap(err, "set deadline")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload := wire.Command(name, args...)
	c.logger.Debug("Send", zap.ByteString("data", payload))
	if _, err := c.conn.Write(payload); err != nil {
		return nil, errors.Wrapf(err, "send %s", name)
	}

	resp, err := wire.ReadResponse(c.conn)
	if err != nil {
		return nil, errors.Wrapf(err, "recv %s", name)
	}
	c.logger.Debug("Recv", zap.Strings("lines", resp.Lines), zap.String("status", resp.Status))

	switch resp.Status {
	case wire.StatusACK:
		return resp.Lines, nil
	case wire.StatusNAK:
		return nil, &CommandError{Command: name, Response: strings.Join(resp.Lines, "\n")}
	default:
		return nil, &InvalidResponseError{Command: name, Response: resp.Status}
	}
}

// rows sends a command and splits every payload line into fields.
func (c *Client) rows(ctx context.Context, name string, args ...string) ([][]string, error) {
	lines, err := c.command(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = wire.Fields(line)
	}
	return rows, nil
}

// row sends a command whose reply must carry exactly one payload line and
// returns its fields.
func (c *Client) row(ctx context.Context, name string, args ...string) ([]string, error) {
	lines, err := c.command(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	if len(lines) != 1 {
		return nil, &InvalidResponseError{Command: name, Response: strings.Join(lines, "\n")}
	}
	return wire.Fields(lines[0]), nil
}
