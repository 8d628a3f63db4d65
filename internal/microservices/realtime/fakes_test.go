package realtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

var errConnClosed = errors.New("use of closed network connection")

type frame struct {
	kind int // zero means a text frame
	data []byte
	err  error
}

// fakeConn is an in-memory Conn. Frames pushed with deliver are returned by
// ReadMessage; Close unblocks a pending read.
type fakeConn struct {
	mu           sync.Mutex
	written      []string
	pings        int
	closeFrames  int
	writeErr     error
	controlErr   error
	closeHandler func(code int, text string) error

	incoming  chan frame
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		incoming: make(chan frame, 16),
		closed:   make(chan struct{}),
	}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case fr := <-f.incoming:
		if fr.err != nil {
			return 0, nil, fr.err
		}
		if fr.kind != 0 {
			return fr.kind, fr.data, nil
		}
		return websocket.TextMessage, fr.data, nil
	case <-f.closed:
		return 0, nil, errConnClosed
	}
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	if f.isClosed() {
		return errConnClosed
	}
	f.written = append(f.written, string(data))
	return nil
}

func (f *fakeConn) WriteControl(messageType int, _ []byte, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.controlErr != nil {
		return f.controlErr
	}
	switch messageType {
	case websocket.PingMessage:
		f.pings++
	case websocket.CloseMessage:
		f.closeFrames++
	}
	return nil
}

func (f *fakeConn) SetReadDeadline(time.Time) error  { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (f *fakeConn) SetCloseHandler(h func(code int, text string) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeHandler = h
}

func (f *fakeConn) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeConn) isClosed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}

func (f *fakeConn) deliver(data string) {
	f.incoming <- frame{data: []byte(data)}
}

func (f *fakeConn) deliverBinary(data []byte) {
	f.incoming <- frame{kind: websocket.BinaryMessage, data: data}
}

// serverClose runs the close handler the way gorilla does, then fails the
// pending read with the close error.
func (f *fakeConn) serverClose(code int) {
	f.mu.Lock()
	h := f.closeHandler
	f.mu.Unlock()
	if h != nil {
		_ = h(code, "")
	}
	f.incoming <- frame{err: &websocket.CloseError{Code: code}}
}

func (f *fakeConn) setWriteErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErr = err
}

func (f *fakeConn) setControlErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.controlErr = err
}

func (f *fakeConn) writtenFrames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.written...)
}

func (f *fakeConn) closeFrameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeFrames
}

// fakeDialer hands out fakeConns, or fails with err when set. With readErr
// set every conn fails its first read, like a socket reset right after the
// handshake.
type fakeDialer struct {
	mu      sync.Mutex
	urls    []string
	conns   []*fakeConn
	err     error
	readErr error
}

func (d *fakeDialer) DialContext(ctx context.Context, urlStr string) (Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.urls = append(d.urls, urlStr)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.err != nil {
		return nil, d.err
	}
	c := newFakeConn()
	if d.readErr != nil {
		c.incoming <- frame{err: d.readErr}
	}
	d.conns = append(d.conns, c)
	return c, nil
}

func (d *fakeDialer) setErr(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

func (d *fakeDialer) dials() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.urls)
}

func (d *fakeDialer) lastURL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.urls) == 0 {
		return ""
	}
	return d.urls[len(d.urls)-1]
}

func (d *fakeDialer) conn(i int) *fakeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conns[i]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, dialer Dialer, delay time.Duration) *Client {
	t.Helper()
	c := NewClient(Options{
		Endpoint:       Endpoint{Host: "sync.local", Port: 8080},
		ConnectTimeout: time.Second,
		ReconnectDelay: delay,
		WriteTimeout:   time.Second,
		Dialer:         dialer,
		Logger:         discardLogger(),
		Registerer:     prometheus.NewRegistry(),
	})
	t.Cleanup(c.Disconnect)
	return c
}

// waitStatus reads events until one with the wanted status arrives.
func waitStatus(t *testing.T, events <-chan Event, want Status) StatusEvent {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				t.Fatalf("event stream closed while waiting for %s", want)
			}
			if s, ok := e.(StatusEvent); ok && s.Status == want {
				return s
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func waitData(t *testing.T, events <-chan Event) DataEvent {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				t.Fatal("event stream closed while waiting for data")
			}
			if d, ok := e.(DataEvent); ok {
				return d
			}
		case <-timeout:
			t.Fatal("timed out waiting for data")
		}
	}
}

// collect reads until the stream closes.
func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, e)
		case <-timeout:
			t.Fatal("event stream was not closed")
		}
	}
}

func (f *fakeConn) pingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings
}
