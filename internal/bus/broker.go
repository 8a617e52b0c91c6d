// Package bus fans encoded frames out from the single ingestion path to any
// number of subscribers. The publisher never blocks: a subscriber that
// cannot keep up loses its oldest unread frames and learns how many on its
// next read.
package bus

import (
	"context"
	"sync"
	"sync/atomic"

	"main/pkg/exception"
)

// Delivery is one frame handed to a subscriber. Lagged counts the frames
// dropped for this subscriber since its previous read.
type Delivery struct {
	Frame  []byte
	Lagged uint64
}

// Subscriber is one bounded consumer queue. Each subscriber is synchronized
// independently; a slow or dead one never affects the others.
type Subscriber struct {
	mu      sync.Mutex
	ch      chan []byte
	closed  bool
	dropped uint64
}

// Broker is the subscriber registry. A single producer calls Publish;
// subscribers come and go at any time.
type Broker struct {
	mu    sync.RWMutex
	subs  map[*Subscriber]struct{}
	drops uint64
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[*Subscriber]struct{})}
}

// Subscribe attaches a new subscriber with its own queue capacity.
func (b *Broker) Subscribe(capacity int) *Subscriber {
	if capacity <= 0 {
		capacity = 1
	}
	s := &Subscriber{ch: make(chan []byte, capacity)}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Unsubscribe detaches and closes the subscriber. Frames still queued for
// it are abandoned.
func (b *Broker) Unsubscribe(s *Subscriber) {
	if s == nil {
		return
	}
	b.mu.Lock()
	delete(b.subs, s)
	b.mu.Unlock()
	s.close()
}

// Publish offers the frame to every subscriber without blocking. Full
// queues drop their oldest unread frame; closed subscribers are removed
// from the registry.
func (b *Broker) Publish(frame []byte) {
	var dead []*Subscriber

	b.mu.RLock()
	for s := range b.subs {
		if !s.offer(frame, &b.drops) {
			dead = append(dead, s)
		}
	}
	b.mu.RUnlock()

	if len(dead) == 0 {
		return
	}
	b.mu.Lock()
	for _, s := range dead {
		delete(b.subs, s)
	}
	b.mu.Unlock()
}

// Len returns the number of attached subscribers.
func (b *Broker) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Drops returns the total frames dropped across all subscribers.
func (b *Broker) Drops() uint64 {
	return atomic.LoadUint64(&b.drops)
}

// offer enqueues the frame, evicting the oldest entry when the queue is
// full. Returns false when the subscriber is closed.
func (s *Subscriber) offer(frame []byte, totalDrops *uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	for {
		select {
		case s.ch <- frame:
			return true
		default:
		}
		select {
		case <-s.ch:
			atomic.AddUint64(&s.dropped, 1)
			atomic.AddUint64(totalDrops, 1)
		default:
		}
	}
}

// Next blocks until a frame arrives, the context ends, or the subscriber is
// closed. The returned lag count is reset by the read.
func (s *Subscriber) Next(ctx context.Context) (Delivery, error) {
	select {
	case <-ctx.Done():
		return Delivery{}, ctx.Err()
	case frame, ok := <-s.ch:
		if !ok {
			return Delivery{}, exception.ErrSubscriberClosed
		}
		return Delivery{Frame: frame, Lagged: atomic.SwapUint64(&s.dropped, 0)}, nil
	}
}

// TryNext returns the next queued frame without blocking.
func (s *Subscriber) TryNext() (Delivery, bool) {
	select {
	case frame, ok := <-s.ch:
		if !ok {
			return Delivery{}, false
		}
		return Delivery{Frame: frame, Lagged: atomic.SwapUint64(&s.dropped, 0)}, true
	default:
		return Delivery{}, false
	}
}

func (s *Subscriber) close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	s.mu.Unlock()
}
