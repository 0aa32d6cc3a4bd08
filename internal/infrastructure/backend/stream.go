package backend

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// StreamClient owns the single push-channel websocket. It dials, detects
// loss, and schedules reconnection after a fixed delay, indefinitely: the
// venue can be unreachable for hours (market closures) and the mirror
// must heal itself without an operator. There is no backoff growth and
// no retry cap on purpose.
//
// The client never looks at frame content. It exposes the raw frames via
// OnFrame and a boolean connectivity signal via OnStateChange; the
// channel has no replay, so the state-change callback is where callers
// hook a full snapshot reload.
type StreamClient struct {
	url            string
	reconnectDelay time.Duration
	logger         *zap.Logger

	onFrame func([]byte)
	onState func(bool)

	mu        sync.Mutex
	conn      *websocket.Conn
	reconnect *time.Timer
	closed    bool
}

func NewStreamClient(url string, reconnectDelay time.Duration, logger *zap.Logger) *StreamClient {
	if reconnectDelay <= 0 {
		reconnectDelay = 3 * time.Second
	}
	return &StreamClient{
		url:            url,
		reconnectDelay: reconnectDelay,
		logger:         logger,
	}
}

// OnFrame registers the raw-frame consumer. Must be called before Connect.
func (c *StreamClient) OnFrame(fn func([]byte)) {
	c.onFrame = fn
}

// OnStateChange registers the connectivity signal consumer; it fires
// with true on every successful (re)connect and false on every loss.
// Must be called before Connect.
func (c *StreamClient) OnStateChange(fn func(bool)) {
	c.onState = fn
}

// Connect dials the channel. A failed dial schedules a retry like any
// later loss would, so a venue that is down at startup still gets
// mirrored once it comes back.
func (c *StreamClient) Connect() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errors.New("stream client is closed")
	}
	if c.conn != nil {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	c.logger.Info("connecting push channel", zap.String("url", c.url))
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		c.logger.Warn("push channel dial failed", zap.Error(err))
		c.scheduleReconnect()
		return errors.Wrap(err, "dial push channel")
	}

	c.mu.Lock()
	if c.closed || c.conn != nil {
		// Closed, or a racing dial won; this connection is surplus.
		closed := c.closed
		c.mu.Unlock()
		conn.Close()
		if closed {
			return errors.New("stream client is closed")
		}
		return nil
	}
	c.conn = conn
	c.mu.Unlock()

	c.logger.Info("push channel connected")
	if c.onState != nil {
		c.onState(true)
	}
	go c.readLoop(conn)
	return nil
}

// Connected reports whether a live connection exists right now.
func (c *StreamClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Close tears the channel down for good and cancels any pending
// reconnection. Skipping the cancel would let a stale timer dial a
// connection for a session that no longer exists.
func (c *StreamClient) Close() {
	c.mu.Lock()
	c.closed = true
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

func (c *StreamClient) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.handleLoss(conn, err)
			return
		}
		if c.onFrame != nil {
			c.onFrame(raw)
		}
	}
}

func (c *StreamClient) handleLoss(conn *websocket.Conn, err error) {
	conn.Close()

	c.mu.Lock()
	if c.conn != conn {
		// Already replaced or closed; nothing to do.
		c.mu.Unlock()
		return
	}
	c.conn = nil
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return
	}
	c.logger.Warn("push channel lost", zap.Error(err))
	if c.onState != nil {
		c.onState(false)
	}
	c.scheduleReconnect()
}

// scheduleReconnect arms the fixed-delay timer. At most one timer is
// ever pending, so repeated losses cannot stack concurrent dials.
func (c *StreamClient) scheduleReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.reconnect != nil {
		return
	}
	c.reconnect = time.AfterFunc(c.reconnectDelay, func() {
		c.mu.Lock()
		c.reconnect = nil
		closed := c.closed
		c.mu.Unlock()
		if closed {
			return
		}
		// Connect re-arms the timer itself if the dial fails.
		_ = c.Connect()
	})
}
