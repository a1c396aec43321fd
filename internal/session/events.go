package session

// Package session holds the reactive session state shared by server-rendered
// views: a store that tracks the authenticated user, an event broker that
// feeds it, and the role gate that decides what a snapshot may see.

import (
	"sync"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
)

// Broker fans auth events out to subscribers. Every published event carries
// a sequence number that increases monotonically across all event types, so
// consumers can totally order events against their own in-flight work.
type Broker struct {
	mu     sync.Mutex
	seq    uint64
	subs   map[chan domainauth.Event]struct{}
	closed bool
}

// NewBroker creates a new event broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[chan domainauth.Event]struct{})}
}

// Publish assigns the next sequence number and delivers the event to every
// subscriber. Delivery never blocks: a subscriber that has fallen behind by
// a full buffer loses the oldest event, which is safe because every event
// triggers a fresh lookup rather than carrying incremental state.
func (b *Broker) Publish(eventType domainauth.EventType, sess *domainauth.Session) domainauth.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	evt := domainauth.Event{
		Seq:     b.seq,
		Type:    eventType,
		Session: sess,
	}
	if b.closed {
		return evt
	}
	for ch := range b.subs {
		select {
		case ch <- evt:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- evt:
			default:
			}
		}
	}
	return evt
}

// Subscribe registers a new subscriber and returns its channel plus a
// cancel function. Cancel is idempotent.
func (b *Broker) Subscribe() (<-chan domainauth.Event, func()) {
	ch := make(chan domainauth.Event, 16)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
		})
	}
	return ch, cancel
}

// Close drops all subscribers. Publishing after Close still assigns
// sequence numbers but delivers nothing.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
	}
}
