package deepgram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"callbridge/internal/observability"

	"github.com/gorilla/websocket"
)

var (
	ErrDialFailed         = errors.New("agent dial failed")
	ErrHandshakeRejected  = errors.New("agent handshake rejected")
	ErrSettingsNotApplied = errors.New("agent settings could not be sent")
)

// DefaultMaxMessageBytes is the largest agent message read by default.
const DefaultMaxMessageBytes = 1 << 20

// Options configures the agent client.
type Options struct {
	URL              string
	APIKey           string
	DialAttempts     int
	DialRetryDelay   time.Duration
	HandshakeTimeout time.Duration
	// MaxMessageBytes bounds one agent message; audio frames are a few KB
	MaxMessageBytes int64
}

// Client opens Voice Agent websocket sessions.
type Client struct {
	url        string
	dialer     *websocket.Dialer
	readLimit  int64
	attempts   int
	retryDelay time.Duration
	logger     *observability.Logger
}

func NewClient(opts Options, logger *observability.Logger) *Client {
	if opts.DialAttempts < 1 {
		opts.DialAttempts = 1
	}
	if opts.HandshakeTimeout == 0 {
		opts.HandshakeTimeout = 10 * time.Second
	}
	if opts.MaxMessageBytes <= 0 {
		opts.MaxMessageBytes = DefaultMaxMessageBytes
	}
	return &Client{
		url: opts.URL,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: opts.HandshakeTimeout,
			// The agent API authenticates through the subprotocol header.
			Subprotocols: []string{"token", opts.APIKey},
		},
		readLimit:  opts.MaxMessageBytes,
		attempts:   opts.DialAttempts,
		retryDelay: opts.DialRetryDelay,
		logger:     logger,
	}
}

// Connect dials the agent and sends settings as the first message. Only
// network-level dial failures are retried; a rejected handshake is final.
func (c *Client) Connect(ctx context.Context, settings Settings) (*websocket.Conn, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}

	conn.SetReadLimit(c.readLimit)

	if err := conn.WriteJSON(settings); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrSettingsNotApplied, err)
	}
	return conn, nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		conn, resp, err := c.dialer.DialContext(ctx, c.url, nil)
		if err == nil {
			if attempt > 1 {
				c.logger.Info(ctx, fmt.Sprintf("Connected to agent after %d attempts", attempt))
			}
			return conn, nil
		}
		if resp != nil && resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, fmt.Errorf("%w: status %d", ErrHandshakeRejected, resp.StatusCode)
		}

		lastErr = err
		c.logger.InfoWithError(ctx, fmt.Sprintf("Agent dial attempt %d/%d failed", attempt, c.attempts), err)
		if attempt == c.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrDialFailed, ctx.Err())
		case <-time.After(c.retryDelay):
		}
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrDialFailed, c.attempts, lastErr)
}
