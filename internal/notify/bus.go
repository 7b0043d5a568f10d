// Package notify is a minimal publish/subscribe bus for state-change signals.
// Events carry no payload; subscribers re-read the state they care about.
package notify

import "sync"

type Topic string

const (
	TopicCart     Topic = "cart.updated"
	TopicWishlist Topic = "wishlist.updated"
)

type subscriber struct {
	id int
	fn func()
}

type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic][]subscriber
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscriber)}
}

// Subscribe registers fn for topic and returns a func that removes it.
// Calling the returned func more than once is harmless. On a nil Bus the
// subscription is a no-op.
func (b *Bus) Subscribe(topic Topic, fn func()) (unsubscribe func()) {
	if b == nil {
		return func() {}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			subs := b.subs[topic]
			for i, s := range subs {
				if s.id == id {
					b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish calls every subscriber of topic synchronously, in subscription
// order. Subscribers may subscribe or unsubscribe from inside the callback.
func (b *Bus) Publish(topic Topic) {
	if b == nil {
		return
	}

	b.mu.RLock()
	subs := make([]subscriber, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn()
	}
}
