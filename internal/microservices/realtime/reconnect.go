package realtime

import (
	"context"
	"time"
)

// reconnectJob is the single background reconnection loop of a Client.
type reconnectJob struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// startReconnect launches the reconnection loop unless one is already
// running or the Client is closed.
func (c *Client) startReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() || c.reconnect != nil {
		return
	}

	ctx, cancel := context.WithCancel(c.rootCtx)
	job := &reconnectJob{cancel: cancel, done: make(chan struct{})}
	c.reconnect = job
	c.metrics.reconnectLoops.Inc()
	c.log.Info("reconnect_started", "delay", c.opts.ReconnectDelay)

	go c.reconnectLoop(ctx, job)
}

// stopReconnect cancels the running loop, if any. With wait it returns only
// after the loop goroutine has exited; the connect success path does not
// wait because the loop itself may be the caller.
func (c *Client) stopReconnect(wait bool) {
	c.mu.Lock()
	job := c.reconnect
	c.reconnect = nil
	c.mu.Unlock()

	if job == nil {
		return
	}
	job.cancel()
	if wait {
		<-job.done
	}
}

// Reconnecting reports whether a reconnection loop is registered.
func (c *Client) Reconnecting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconnect != nil
}

func (c *Client) reconnectLoop(ctx context.Context, job *reconnectJob) {
	defer func() {
		c.mu.Lock()
		if c.reconnect == job {
			c.reconnect = nil
		}
		c.mu.Unlock()
		job.cancel()
		close(job.done)
	}()

	timer := time.NewTimer(c.opts.ReconnectDelay)
	defer timer.Stop()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		c.metrics.reconnectAttempts.Inc()
		c.log.Info("reconnect_attempt", "attempt", attempt, "endpoint", c.Endpoint().URL())

		_ = c.open(ctx)
		if ctx.Err() != nil || c.IsConnected() {
			return
		}

		c.bus.Publish(newStatus(StatusReconnecting, ""))
		timer.Reset(c.opts.ReconnectDelay)
	}
}
