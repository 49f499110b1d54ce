package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/nvelez/slate/internal/schedule"
)

const (
	// Time allowed to write a message to the authority.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the authority.
	pongWait = 60 * time.Second

	// Ping period; must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size. Full syncs carry the whole term.
	maxMessageSize = 512 * 1024

	// Reconnect backoff bounds.
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// Status is the connection state reported to the presentation layer.
type Status string

const (
	StatusConnecting Status = "connecting"
	StatusConnected  Status = "connected"
	StatusDegraded   Status = "degraded"
)

// Client maintains the websocket connection to the authority. It redials
// with backoff on transport loss; there is no backlog replay, so every
// successful (re)connect is followed by a full resync by the caller's
// OnStatus hook.
type Client struct {
	url string
	log zerolog.Logger

	handler func(Event)
	status  func(Status)

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient creates a websocket client for the authority at url
// (ws:// or wss://).
func NewClient(url string, log zerolog.Logger) *Client {
	return &Client{
		url:     url,
		log:     log,
		handler: func(Event) {},
		status:  func(Status) {},
	}
}

// OnEvent registers the inbound event handler. Events are delivered from a
// single goroutine in arrival order.
func (c *Client) OnEvent(fn func(Event)) {
	if fn != nil {
		c.handler = fn
	}
}

// OnStatus registers the connection status hook.
func (c *Client) OnStatus(fn func(Status)) {
	if fn != nil {
		c.status = fn
	}
}

// Emit sends an event to the authority. Returns ErrSyncUnavailable when the
// connection is down; the caller's local mutation stands either way.
func (c *Client) Emit(ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return schedule.ErrSyncUnavailable
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(ev); err != nil {
		return fmt.Errorf("%w: %v", schedule.ErrSyncUnavailable, err)
	}
	return nil
}

// Run dials the authority and pumps inbound events until ctx is cancelled.
// Transport loss degrades status and triggers a redial with backoff.
func (c *Client) Run(ctx context.Context) error {
	backoff := minBackoff
	for {
		c.status(StatusConnecting)

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			c.log.Warn().Err(err).Dur("retry_in", backoff).Msg("dial failed")
			c.status(StatusDegraded)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = minBackoff

		c.setConn(conn)
		c.log.Info().Str("url", c.url).Msg("connected to authority")
		c.status(StatusConnected)

		err = c.readLoop(ctx, conn)
		c.setConn(nil)
		_ = conn.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn().Err(err).Msg("connection lost")
		c.status(StatusDegraded)
	}
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}

// readLoop decodes inbound events until the connection fails or ctx is
// cancelled. A ping ticker keeps the connection alive.
func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) error {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
				_ = conn.Close()
				return
			case <-ticker.C:
				c.mu.Lock()
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
				c.mu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			return err
		}
		c.handler(ev)
	}
}
