package realtime

import (
	"strings"
	"time"
)

// StatusPrefix starts every rendered status line. Status lines are produced
// locally and never travel over the wire.
const StatusPrefix = "STATUS:"

// Status is a connection lifecycle notification kind.
type Status int

const (
	StatusConnected Status = iota + 1
	StatusDisconnected
	StatusDisconnecting
	StatusReconnecting
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	case StatusDisconnecting:
		return "disconnecting"
	case StatusReconnecting:
		return "reconnecting"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is either a StatusEvent or a DataEvent.
type Event interface {
	isEvent()
}

// StatusEvent reports a connection lifecycle transition.
type StatusEvent struct {
	Status Status
	Detail string // failure detail for StatusError
	At     time.Time
}

// DataEvent carries one raw frame received from the server.
type DataEvent struct {
	Raw []byte
	At  time.Time
}

func (StatusEvent) isEvent() {}
func (DataEvent) isEvent()   {}

// String renders the status line shown to users and written to logs,
// e.g. "STATUS:CONNECTED" or "STATUS:ERROR: dial tcp: connection refused".
func (e StatusEvent) String() string {
	switch e.Status {
	case StatusConnected:
		return StatusPrefix + "CONNECTED"
	case StatusDisconnected:
		return StatusPrefix + "DISCONNECTED"
	case StatusDisconnecting:
		return StatusPrefix + "DISCONNECTING"
	case StatusReconnecting:
		return StatusPrefix + "RECONNECTING..."
	case StatusError:
		return StatusPrefix + "ERROR: " + e.Detail
	default:
		return StatusPrefix + "UNKNOWN"
	}
}

// IsStatusText reports whether text is a rendered status line rather than a
// data frame.
func IsStatusText(text string) bool {
	return strings.HasPrefix(text, StatusPrefix)
}

func newStatus(status Status, detail string) StatusEvent {
	return StatusEvent{Status: status, Detail: detail, At: time.Now().UTC()}
}
