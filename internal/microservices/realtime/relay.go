package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"
)

// ErrDrainInterrupted is returned by Drain when a send fails midway; the
// unsent item is back at the head of the outbox.
var ErrDrainInterrupted = errors.New("outbox drain interrupted")

// Sender is the outbound half of the Client.
type Sender interface {
	SendMessage(text string) bool
}

// Relay mirrors committed local writes to the server. Frames that cannot be
// sent are parked in the outbox and replayed after the next connect.
type Relay struct {
	sender  Sender
	outbox  Outbox
	limiter *rate.Limiter
	log     *slog.Logger

	drainMu sync.Mutex
}

// NewRelay builds a Relay. A nil outbox drops unsent frames; a nil limiter
// drains without pacing.
func NewRelay(sender Sender, outbox Outbox, limiter *rate.Limiter, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		sender:  sender,
		outbox:  outbox,
		limiter: limiter,
		log:     logger.With("component", "relay"),
	}
}

// Relay sends op on dto and reports whether the transport accepted it. It
// never blocks on the network and never undoes the local write.
func (r *Relay) Relay(ctx context.Context, op Operation, dto DTO) bool {
	text, err := EncodeText(op, dto)
	if err != nil {
		r.log.Error("relay_encode_failed", "op", op, "error", err)
		return false
	}

	if r.sender.SendMessage(text) {
		return true
	}

	if r.outbox == nil {
		r.log.Warn("relay_dropped", "op", op)
		return false
	}
	item := NewOutboxItem(text)
	if err := r.outbox.Push(ctx, item); err != nil {
		r.log.Error("outbox_push_failed", "id", item.ID, "error", err)
		return false
	}
	r.log.Info("relay_queued", "id", item.ID, "op", op)
	return false
}

// Run drains the outbox every time the connection comes up. It returns when
// events closes or ctx is done.
func (r *Relay) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			status, isStatus := e.(StatusEvent)
			if !isStatus || status.Status != StatusConnected {
				continue
			}
			sent, err := r.Drain(ctx)
			if err != nil {
				r.log.Warn("outbox_drain_stopped", "sent", sent, "error", err)
			} else if sent > 0 {
				r.log.Info("outbox_drained", "sent", sent)
			}
		}
	}
}

// Drain sends queued frames oldest first until the outbox is empty or a send
// fails.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	if r.outbox == nil {
		return 0, nil
	}
	r.drainMu.Lock()
	defer r.drainMu.Unlock()

	sent := 0
	for {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return sent, err
			}
		}

		item, ok, err := r.outbox.Pop(ctx)
		if err != nil {
			return sent, err
		}
		if !ok {
			return sent, nil
		}

		if !r.sender.SendMessage(item.Text) {
			if err := r.outbox.Requeue(ctx, item); err != nil {
				r.log.Error("outbox_requeue_failed", "id", item.ID, "error", err)
			}
			return sent, ErrDrainInterrupted
		}
		sent++
	}
}

// Pending is the number of frames waiting in the outbox.
func (r *Relay) Pending(ctx context.Context) int {
	if r.outbox == nil {
		return 0
	}
	n, err := r.outbox.Len(ctx)
	if err != nil {
		r.log.Warn("outbox_len_failed", "error", err)
		return 0
	}
	return n
}
