package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// OutboxItem is a frame that could not be sent.
type OutboxItem struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

func NewOutboxItem(text string) OutboxItem {
	return OutboxItem{ID: uuid.New(), Text: text, EnqueuedAt: time.Now().UTC()}
}

// Outbox is a FIFO of unsent frames.
type Outbox interface {
	// Push appends item at the tail.
	Push(ctx context.Context, item OutboxItem) error
	// Pop removes the head. ok is false when the outbox is empty.
	Pop(ctx context.Context) (item OutboxItem, ok bool, err error)
	// Requeue puts item back at the head after a failed send.
	Requeue(ctx context.Context, item OutboxItem) error
	Len(ctx context.Context) (int, error)
}

// MemoryOutbox keeps at most capacity items; pushing onto a full outbox
// drops the oldest one.
type MemoryOutbox struct {
	mu       sync.Mutex
	items    []OutboxItem
	capacity int
	dropped  int
}

func NewMemoryOutbox(capacity int) *MemoryOutbox {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemoryOutbox{capacity: capacity}
}

func (o *MemoryOutbox) Push(_ context.Context, item OutboxItem) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.items) >= o.capacity {
		o.items[0] = OutboxItem{}
		o.items = o.items[1:]
		o.dropped++
	}
	o.items = append(o.items, item)
	return nil
}

func (o *MemoryOutbox) Pop(_ context.Context) (OutboxItem, bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.items) == 0 {
		return OutboxItem{}, false, nil
	}
	item := o.items[0]
	o.items[0] = OutboxItem{}
	o.items = o.items[1:]
	return item, true, nil
}

func (o *MemoryOutbox) Requeue(_ context.Context, item OutboxItem) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.items = append([]OutboxItem{item}, o.items...)
	if len(o.items) > o.capacity {
		o.items = o.items[:o.capacity]
		o.dropped++
	}
	return nil
}

func (o *MemoryOutbox) Len(_ context.Context) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.items), nil
}

// Dropped counts items discarded because the outbox was full.
func (o *MemoryOutbox) Dropped() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dropped
}
