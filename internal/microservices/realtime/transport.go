package realtime

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is the part of *websocket.Conn the Client uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetCloseHandler(h func(code int, text string) error)
	Close() error
}

// Dialer opens a Conn to a ws:// URL.
type Dialer interface {
	DialContext(ctx context.Context, urlStr string) (Conn, error)
}

type wsDialer struct {
	dialer *websocket.Dialer
}

// NewDialer returns a gorilla/websocket dialer with the given handshake
// timeout and no sub-protocol.
func NewDialer(handshakeTimeout time.Duration) Dialer {
	return &wsDialer{dialer: &websocket.Dialer{
		Proxy:            websocket.DefaultDialer.Proxy,
		HandshakeTimeout: handshakeTimeout,
	}}
}

func (d *wsDialer) DialContext(ctx context.Context, urlStr string) (Conn, error) {
	conn, _, err := d.dialer.DialContext(ctx, urlStr, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Endpoint is the host:port of the sync server.
type Endpoint struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func (e Endpoint) Validate() error {
	if e.Host == "" {
		return fmt.Errorf("endpoint host is required")
	}
	if e.Port < 1 || e.Port > 65535 {
		return fmt.Errorf("endpoint port %d out of range", e.Port)
	}
	return nil
}

// URL is ws://host:port with no path.
func (e Endpoint) URL() string {
	u := url.URL{Scheme: "ws", Host: net.JoinHostPort(e.Host, strconv.Itoa(e.Port))}
	return u.String()
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}
