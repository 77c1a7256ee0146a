package medialink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/skylarkvoice/client/internal/logging"
	"github.com/skylarkvoice/client/internal/metrics"
	"github.com/skylarkvoice/client/protocol"

	"github.com/skylarkvoice/client/shared/backoff"
)

var tracer = logging.Tracer("medialink")

// ErrNotConnected is returned by Send when no connection is currently up.
var ErrNotConnected = errors.New("medialink: not connected")

// WebSocketConfig configures the default MediaLink adapter.
type WebSocketConfig struct {
	URL            string
	Token          string
	HandshakeTimeout time.Duration
	WriteTimeout   time.Duration
	ReconnectDelays backoff.Strategy
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
}

// WebSocket is the default MediaLink adapter. It owns one gorilla/websocket
// connection, decodes inbound frames as envelopes on a dedicated read
// goroutine, and reports a read failure on Errors. It does not reconnect by
// itself; Reconnect retries with the configured backoff strategy
// (backoff.Quick unless set).
type WebSocket struct {
	cfg WebSocketConfig

	mu        sync.RWMutex
	conn      *websocket.Conn
	connected bool
	writeMu   sync.Mutex

	envelopes chan protocol.Envelope
	errs      chan error
}

func NewWebSocket(cfg WebSocketConfig) *WebSocket {
	if cfg.HandshakeTimeout == 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.ReconnectDelays.Delays == nil {
		cfg.ReconnectDelays = backoff.Quick
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &WebSocket{
		cfg:       cfg,
		envelopes: make(chan protocol.Envelope, 64),
		errs:      make(chan error, 16),
	}
}

func (c *WebSocket) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *WebSocket) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	dialer := websocket.Dialer{HandshakeTimeout: c.cfg.HandshakeTimeout}
	header := http.Header{}
	if c.cfg.Token != "" {
		header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	conn, resp, err := dialer.DialContext(ctx, c.cfg.URL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("medialink: connect failed (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("medialink: connect failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readLoop()
	c.cfg.Logger.Info("medialink: connected", "url", c.cfg.URL)
	return nil
}

func (c *WebSocket) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.connected = false
}

func (c *WebSocket) Send(ctx context.Context, env protocol.Envelope) error {
	ctx, span := tracer.Start(ctx, "medialink.send")
	defer span.End()
	span.SetAttributes(logging.StanzaType(env.Type.String()), logging.StanzaDirection("outbound"))
	if env.ConversationID != nil {
		span.SetAttributes(logging.ConversationID(*env.ConversationID))
	}

	c.mu.RLock()
	conn := c.conn
	connected := c.connected
	c.mu.RUnlock()
	if !connected || conn == nil {
		return ErrNotConnected
	}

	var buf bytes.Buffer
	if err := protocol.EncodeEnvelope(&buf, env); err != nil {
		return fmt.Errorf("medialink: encode: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, buf.Bytes()); err != nil {
		return fmt.Errorf("medialink: write: %w", err)
	}
	if c.cfg.Metrics != nil {
		c.cfg.Metrics.EnvelopesSent.WithLabelValues(env.Type.String()).Inc()
	}
	return nil
}

func (c *WebSocket) Envelopes() <-chan protocol.Envelope { return c.envelopes }
func (c *WebSocket) Errors() <-chan error                { return c.errs }

func (c *WebSocket) readLoop() {
	for {
		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()
		if conn == nil {
			return
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.emitErr(fmt.Errorf("medialink: disconnected: %w", err))
			} else {
				c.emitErr(fmt.Errorf("medialink: disconnected"))
			}
			return
		}

		env, err := protocol.DecodeEnvelope(bytes.NewReader(data))
		if err != nil {
			if c.cfg.Metrics != nil {
				if de, ok := err.(*protocol.DecodeError); ok {
					c.cfg.Metrics.DecodeErrors.WithLabelValues(de.Kind.String()).Inc()
				}
			}
			c.emitErr(err)
			continue
		}
		if c.cfg.Metrics != nil {
			c.cfg.Metrics.EnvelopesReceived.WithLabelValues(env.Type.String()).Inc()
		}
		select {
		case c.envelopes <- env:
		default:
			c.cfg.Logger.Warn("medialink: envelope channel full, dropping", "type", env.Type.String())
		}
	}
}

func (c *WebSocket) emitErr(err error) {
	select {
	case c.errs <- err:
	default:
	}
}

// Reconnect tears down any existing connection and retries with the
// configured backoff strategy until ctx is cancelled or a connection
// succeeds.
func (c *WebSocket) Reconnect(ctx context.Context) error {
	c.Disconnect()
	return backoff.RetryWithCallback(ctx, c.cfg.ReconnectDelays, func(ctx context.Context, attempt int) error {
		return c.Connect(ctx)
	}, func(attempt int, err error, delay time.Duration) {
		if c.cfg.Metrics != nil {
			c.cfg.Metrics.ReconnectAttempts.Inc()
		}
		c.cfg.Logger.Warn("medialink: reconnect attempt failed", "attempt", attempt, "error", err, "retry_in", delay)
	})
}
