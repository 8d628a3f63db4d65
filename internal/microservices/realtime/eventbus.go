package realtime

import "sync"

// EventBus fans every published Event out to all subscribers. Each subscriber
// owns an unbounded queue drained by its own goroutine, so Publish never
// waits on a slow reader.
type EventBus struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	closed bool
}

type subscriber struct {
	mu        sync.Mutex
	cond      *sync.Cond
	queue     []Event
	draining  bool // bus closed: deliver what is queued, then close out
	cancelled bool // unsubscribed: stop immediately
	out       chan Event
	done      chan struct{}
	once      sync.Once
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[*subscriber]struct{})}
}

// Subscribe returns a channel receiving every event published from now on
// and a function that cancels the subscription. After Close the channel is
// already closed.
func (b *EventBus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch, func() {}
	}

	s := &subscriber{
		out:  make(chan Event),
		done: make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	b.subs[s] = struct{}{}
	go s.forward()

	return s.out, func() { b.unsubscribe(s) }
}

// Publish enqueues e for every subscriber. No-op after Close.
func (b *EventBus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for s := range b.subs {
		s.push(e)
	}
}

// Close stops accepting events. Subscribers receive what was already queued
// and then see their channel closed.
func (b *EventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for s := range b.subs {
		s.mu.Lock()
		s.draining = true
		s.cond.Signal()
		s.mu.Unlock()
	}
	b.subs = nil
}

func (b *EventBus) unsubscribe(s *subscriber) {
	b.mu.Lock()
	delete(b.subs, s)
	b.mu.Unlock()

	s.once.Do(func() {
		s.mu.Lock()
		s.cancelled = true
		s.queue = nil
		s.cond.Signal()
		s.mu.Unlock()
		close(s.done)
	})
}

func (s *subscriber) push(e Event) {
	s.mu.Lock()
	if !s.cancelled {
		s.queue = append(s.queue, e)
		s.cond.Signal()
	}
	s.mu.Unlock()
}

func (s *subscriber) forward() {
	defer close(s.out)

	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.draining && !s.cancelled {
			s.cond.Wait()
		}
		if s.cancelled || len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		e := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- e:
		case <-s.done:
			return
		}
	}
}
