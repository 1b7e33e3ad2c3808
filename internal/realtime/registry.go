package realtime

import (
	"sync"

	"github.com/gobwas/glob"
)

// Handler consumes a decoded event. Handlers run on the read loop; they must
// not block.
type Handler func(Event)

// Subscription is a handle to one registered topic subscription. Closing it
// releases the handler and, when it was the topic's last subscriber, tells
// the service to stop delivering the topic. Close is idempotent, so handles
// can be torn down from a deferred cleanup without double-release concern.
type Subscription struct {
	id      uint64
	topic   string
	client  *Client
	once    sync.Once
}

// Topic returns the topic or pattern this handle subscribed.
func (s *Subscription) Topic() string { return s.topic }

// Close releases the subscription.
func (s *Subscription) Close() {
	s.once.Do(func() {
		if s.client != nil {
			s.client.release(s)
		}
	})
}

type registration struct {
	id      uint64
	topic   string
	matcher glob.Glob
	handler Handler
}

// registry maps topics to registered handlers. Subscriptions may be glob
// patterns; dispatch matches the frame's concrete topic against each
// compiled pattern with ':' as the separator.
type registry struct {
	mu     sync.RWMutex
	subs   map[uint64]*registration
	nextID uint64
}

func newRegistry() *registry {
	return &registry{subs: make(map[uint64]*registration)}
}

func (r *registry) add(topic string, handler Handler) (*registration, error) {
	matcher, err := glob.Compile(topic, ':')
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	reg := &registration{id: r.nextID, topic: topic, matcher: matcher, handler: handler}
	r.subs[reg.id] = reg
	return reg, nil
}

// remove drops a registration and reports whether any subscriber for the
// same topic string remains.
func (r *registry) remove(id uint64) (topic string, last bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.subs[id]
	if !ok {
		return "", false
	}
	delete(r.subs, id)
	for _, other := range r.subs {
		if other.topic == reg.topic {
			return reg.topic, false
		}
	}
	return reg.topic, true
}

// handlersFor returns the handlers whose pattern matches the concrete topic.
func (r *registry) handlersFor(topic string) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var handlers []Handler
	for _, reg := range r.subs {
		if reg.matcher.Match(topic) {
			handlers = append(handlers, reg.handler)
		}
	}
	return handlers
}

// topics returns the distinct subscribed topic strings, used to resubscribe
// after a reconnect.
func (r *registry) topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, reg := range r.subs {
		if _, ok := seen[reg.topic]; ok {
			continue
		}
		seen[reg.topic] = struct{}{}
		out = append(out, reg.topic)
	}
	return out
}
