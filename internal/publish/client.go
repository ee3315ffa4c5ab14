package publish

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/colorgrid/internal/ctxlog"
	"github.com/vk/colorgrid/internal/report"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultEvent is the event name results are emitted under.
const DefaultEvent = "channels"

// DefaultTimeout bounds the initial connection.
const DefaultTimeout = 15 * time.Second

// Options configures a Client.
type Options struct {
	// URL is the server address; its path selects the socket.io endpoint.
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Client is a connected socket.io publisher.
type Client struct {
	io    *socket.Socket
	event string
}

// target splits a server URL into the manager base URL and endpoint path.
func target(raw string) (baseURL, path string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("URL %q must include a scheme and a host", raw)
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), u.Path, nil
}

// Dial connects to the server and waits for the connection to be accepted.
func Dial(ctx context.Context, opts Options) (*Client, error) {
	logger := ctxlog.FromContext(ctx).With("publisher", "socketio", "url", opts.URL)

	baseURL, path, err := target(opts.URL)
	if err != nil {
		return nil, err
	}
	if opts.Event == "" {
		opts.Event = DefaultEvent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Namespace == "" {
		opts.Namespace = "/"
	}

	sopts := socket.DefaultOptions()
	if path != "" {
		sopts.SetPath(path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)
	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket(opts.Namespace, sopts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Publisher connected.", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case connectChan <- err:
		default:
		}
	})

	logger.Debug("Initiating publisher connection.")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &Client{io: io, event: opts.Event}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(opts.Timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", opts.Timeout)
	}
}

// Publish emits one event carrying every result.
func (c *Client) Publish(ctx context.Context, results []report.Result) error {
	if !c.io.Connected() {
		return errors.New("publisher is not connected")
	}
	ctxlog.FromContext(ctx).Debug("Publishing channels.", "event", c.event, "plugs", len(results))
	c.io.Emit(c.event, results)
	return nil
}

// Close disconnects from the server.
func (c *Client) Close() error {
	c.io.Disconnect()
	return nil
}
