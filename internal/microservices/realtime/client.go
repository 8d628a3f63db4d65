package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrClientClosed is returned once Disconnect has been called.
var ErrClientClosed = errors.New("sync client closed")

const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultReconnectDelay = 5 * time.Second
	DefaultWriteTimeout   = 10 * time.Second
)

// Options configure a Client. Zero durations take the defaults above;
// PingInterval zero disables keepalive pings.
type Options struct {
	Endpoint       Endpoint
	ConnectTimeout time.Duration
	ReconnectDelay time.Duration
	WriteTimeout   time.Duration
	PingInterval   time.Duration

	Dialer     Dialer                // defaults to NewDialer(ConnectTimeout)
	Logger     *slog.Logger          // defaults to slog.Default()
	Registerer prometheus.Registerer // nil leaves metrics unregistered
}

// Client owns the single connection to the sync server. It reconnects on its
// own after a drop or a failed send, and publishes status and data events on
// its EventBus. A Client is not reusable after Disconnect.
type Client struct {
	opts    Options
	dialer  Dialer
	log     *slog.Logger
	bus     *EventBus
	metrics *clientMetrics

	state  atomic.Int32
	closed atomic.Bool

	// cancelled by Disconnect to abort in-flight dials
	rootCtx    context.Context
	rootCancel context.CancelFunc

	dialMu sync.Mutex // one dial or endpoint swap at a time

	mu        sync.Mutex // guards endpoint, sess, reconnect
	endpoint  Endpoint
	sess      *session
	reconnect *reconnectJob

	writeMu sync.Mutex
	wg      sync.WaitGroup // read pump and keepalive goroutines
}

// session is one open socket. Callbacks carry their session so that events
// from a socket that was already replaced are ignored.
type session struct {
	conn Conn
	done chan struct{} // closed when the session is detached
}

func NewClient(opts Options) *Client {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = DefaultReconnectDelay
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultWriteTimeout
	}
	dialer := opts.Dialer
	if dialer == nil {
		dialer = NewDialer(opts.ConnectTimeout)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		opts:       opts,
		dialer:     dialer,
		log:        logger.With("component", "sync_client"),
		bus:        NewEventBus(),
		metrics:    newClientMetrics(opts.Registerer),
		rootCtx:    ctx,
		rootCancel: cancel,
		endpoint:   opts.Endpoint,
	}
	c.setState(StateDisconnected)
	return c
}

// Events subscribes to the status and data stream. The returned function
// cancels the subscription; the channel is closed after Disconnect.
func (c *Client) Events() (<-chan Event, func()) {
	return c.bus.Subscribe()
}

func (c *Client) State() ConnectionState {
	return ConnectionState(c.state.Load())
}

func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

func (c *Client) Endpoint() Endpoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endpoint
}

func (c *Client) setState(s ConnectionState) {
	c.state.Store(int32(s))
	c.metrics.state.Set(float64(s))
}

// Connect opens the connection and blocks until the handshake completes or
// ConnectTimeout passes. It is a no-op when already connected. A failed
// attempt, including one abandoned by ctx, leaves the reconnection loop
// running and returns the error.
func (c *Client) Connect(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	c.stopReconnect(true)
	err := c.open(ctx)
	if err != nil && !errors.Is(err, ErrClientClosed) {
		c.startReconnect()
	}
	return err
}

func (c *Client) open(ctx context.Context) error {
	c.dialMu.Lock()
	defer c.dialMu.Unlock()

	if c.closed.Load() {
		return ErrClientClosed
	}
	if c.IsConnected() {
		return nil
	}

	endpoint := c.Endpoint()
	c.setState(StateConnecting)

	dialCtx, cancel := context.WithTimeout(ctx, c.opts.ConnectTimeout)
	defer cancel()
	stop := context.AfterFunc(c.rootCtx, cancel)
	defer stop()

	conn, err := c.dialer.DialContext(dialCtx, endpoint.URL())
	if err != nil {
		c.setState(StateDisconnected)
		if c.closed.Load() {
			return ErrClientClosed
		}
		if ctx.Err() != nil {
			// caller gave up; not a transport failure
			return fmt.Errorf("connect %s: %w", endpoint, ctx.Err())
		}
		c.log.Warn("connect_failed", "endpoint", endpoint.URL(), "error", err)
		c.bus.Publish(newStatus(StatusError, err.Error()))
		c.startReconnect()
		return fmt.Errorf("connect %s: %w", endpoint, err)
	}

	// long-lived channel: no read deadline
	_ = conn.SetReadDeadline(time.Time{})

	s := &session{conn: conn, done: make(chan struct{})}
	conn.SetCloseHandler(c.closeHandler(s))

	// the loop must be gone before the read pump can fail and start a new one
	c.stopReconnect(false)

	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		conn.Close()
		return ErrClientClosed
	}
	c.sess = s
	c.setState(StateConnected)
	c.wg.Add(1)
	go c.readPump(s)
	if c.opts.PingInterval > 0 {
		c.wg.Add(1)
		go c.pingLoop(s)
	}
	c.mu.Unlock()

	c.log.Info("client_connected", "endpoint", endpoint.URL())
	c.bus.Publish(newStatus(StatusConnected, ""))
	return nil
}

// Disconnect stops the reconnection loop, closes the socket with a normal
// closure and closes the event stream. Idempotent.
func (c *Client) Disconnect() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	c.rootCancel()
	c.stopReconnect(true)

	c.dialMu.Lock()
	defer c.dialMu.Unlock()

	s := c.detachCurrent()
	if s != nil {
		c.setState(StateDisconnecting)
		c.closeConn(s.conn)
	}
	c.setState(StateDisconnected)
	c.bus.Publish(newStatus(StatusDisconnected, ""))

	c.wg.Wait()
	c.bus.Close()
	c.log.Info("client_disconnected")
}

// SetEndpoint points the Client at a new server: the old socket is closed,
// any reconnection loop for it is stopped, and Connect targets e.
func (c *Client) SetEndpoint(ctx context.Context, e Endpoint) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	if err := e.Validate(); err != nil {
		return err
	}
	c.stopReconnect(true)

	c.dialMu.Lock()
	c.mu.Lock()
	old := c.endpoint
	c.endpoint = e
	c.mu.Unlock()

	if s := c.detachCurrent(); s != nil {
		c.setState(StateDisconnecting)
		c.closeConn(s.conn)
		c.setState(StateDisconnected)
		c.bus.Publish(newStatus(StatusDisconnected, ""))
	}
	c.dialMu.Unlock()

	c.log.Info("endpoint_changed", "from", old.URL(), "to", e.URL())
	return c.Connect(ctx)
}

// SendMessage writes one text frame. It returns true only when the transport
// accepted it. Otherwise the frame is dropped and the reconnection loop is
// started.
func (c *Client) SendMessage(text string) bool {
	if c.closed.Load() {
		return false
	}

	c.mu.Lock()
	s := c.sess
	c.mu.Unlock()

	if s == nil || !c.IsConnected() {
		c.metrics.sendFailures.Inc()
		c.log.Debug("send_skipped", "reason", "not connected")
		c.startReconnect()
		return false
	}

	c.writeMu.Lock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
	err := s.conn.WriteMessage(websocket.TextMessage, []byte(text))
	c.writeMu.Unlock()

	if err != nil {
		c.metrics.sendFailures.Inc()
		c.log.Warn("send_failed", "error", err)
		c.fail(s, err)
		return false
	}
	c.metrics.framesSent.Inc()
	return true
}

func (c *Client) readPump(s *session) {
	defer c.wg.Done()

	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				c.serverClosed(s, closeErr)
			} else {
				c.fail(s, err)
			}
			return
		}
		if kind != websocket.TextMessage {
			c.log.Warn("frame_dropped", "reason", "not a text frame", "type", kind)
			continue
		}
		c.metrics.framesReceived.Inc()
		c.bus.Publish(DataEvent{Raw: data, At: time.Now().UTC()})
	}
}

// closeHandler reports the server's close frame and answers it. The state
// stays Connected until the read pump sees the socket go away.
func (c *Client) closeHandler(s *session) func(code int, text string) error {
	return func(code int, text string) error {
		if c.isCurrent(s) {
			c.log.Info("server_closing", "code", code, "reason", text)
			c.bus.Publish(newStatus(StatusDisconnecting, ""))
		}
		msg := websocket.FormatCloseMessage(code, "")
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.opts.WriteTimeout))
		return nil
	}
}

func (c *Client) pingLoop(s *session) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.opts.WriteTimeout))
			if err != nil {
				c.log.Warn("ping_failed", "error", err)
				c.fail(s, err)
				return
			}
		}
	}
}

// serverClosed handles an orderly close by the server.
func (c *Client) serverClosed(s *session, err *websocket.CloseError) {
	if !c.detach(s) {
		return
	}
	s.conn.Close()
	c.log.Info("connection_closed", "code", err.Code, "reason", err.Text)
	c.bus.Publish(newStatus(StatusDisconnected, ""))
	c.startReconnect()
}

// fail drops s after a transport error and starts the reconnection loop.
// Errors from a session that was already replaced are ignored.
func (c *Client) fail(s *session, err error) {
	if !c.detach(s) {
		return
	}
	s.conn.Close()
	c.log.Warn("connection_failed", "error", err)
	c.bus.Publish(newStatus(StatusError, err.Error()))
	c.startReconnect()
}

func (c *Client) isCurrent(s *session) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess == s
}

// detach clears s if it is still the current session. False means s was
// already replaced and its events must be ignored.
func (c *Client) detach(s *session) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess != s {
		return false
	}
	c.sess = nil
	close(s.done)
	c.setState(StateDisconnected)
	return true
}

func (c *Client) detachCurrent() *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.sess
	if s != nil {
		c.sess = nil
		close(s.done)
	}
	return s
}

func (c *Client) closeConn(conn Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.opts.WriteTimeout))
	_ = conn.Close()
}
