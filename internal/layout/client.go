// Package layout asks an external layout service to position a dependency
// graph. The service speaks socket.io: the client emits a `layout` event
// carrying the graphlib document and waits for `layoutResult`.
package layout

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/vk/pipeconf/internal/ctxlog"
	"github.com/vk/pipeconf/internal/graph/export"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	EventLayout       = "layout"
	EventLayoutResult = "layoutResult"

	DefaultTimeout = 10 * time.Second
)

// Options configures a Client.
type Options struct {
	URL                string
	Namespace          string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Client requests layouts from one service endpoint.
type Client struct {
	opts Options
}

// NewClient returns a client for opts. A zero Timeout means DefaultTimeout
// and an empty Namespace means "/".
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Namespace == "" {
		opts.Namespace = "/"
	}
	return &Client{opts: opts}
}

// opResult is a private struct to pass results through the done channel.
type opResult struct {
	value *Result
	err   error
}

// Layout sends g to the service and waits for the positioned result.
func (c *Client) Layout(ctx context.Context, g export.Graphlib) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("component", "layout", "url", c.opts.URL)
	logger.Debug("Layout request started")
	defer logger.Debug("Layout request finished")

	payload, err := requestPayload(g)
	if err != nil {
		return nil, err
	}

	parsedURL, err := url.Parse(c.opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("layout URL %q must be absolute", c.opts.URL)
	}

	var isConnected atomic.Bool
	done := make(chan opResult, 1)
	finish := func(r opResult) {
		select {
		case done <- r:
		default:
		}
	}

	opCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	if c.opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(c.opts.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting layout client")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Debug("Connected to layout service", "namespace", c.opts.Namespace, "sid", io.Id())
		io.Emit(EventLayout, payload)
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("layout service connection failed")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = fmt.Errorf("layout service connection failed: %w", e)
			}
		}
		finish(opResult{err: err})
	})

	io.On(types.EventName(EventLayoutResult), func(data ...any) {
		var first any
		if len(data) > 0 {
			first = data[0]
		}
		res, err := DecodeResult(first)
		finish(opResult{value: res, err: err})
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for event '%s'", EventLayoutResult)
		}
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	case res := <-done:
		return res.value, res.err
	}
}

// requestPayload builds the `layout` event body as plain JSON data.
func requestPayload(g export.Graphlib) (map[string]any, error) {
	raw, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encoding layout request: %w", err)
	}
	var graph map[string]any
	if err := json.Unmarshal(raw, &graph); err != nil {
		return nil, fmt.Errorf("encoding layout request: %w", err)
	}
	return map[string]any{
		"graph":   graph,
		"rankdir": g.Value.RankDir,
	}, nil
}
