package store

import "sync"

// hub fans change notifications out to subscribers. Each subscriber runs
// its own goroutine: a buffered kick channel coalesces bursts of changes
// into one snapshot load, and the pre-loaded kick produces the immediate
// initial snapshot the Subscribe contract promises.
type hub struct {
	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
	closed bool
}

type subscriber struct {
	topic    string
	kick     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// halt stops the delivery goroutine and waits for it to exit. Both the
// cancel func and hub.close call it, possibly concurrently.
func (s *subscriber) halt() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func newHub() *hub {
	return &hub{subs: make(map[int]*subscriber)}
}

// subscribe registers deliver to run once immediately and once after every
// notify on topic. Delivery errors go to onError; the subscription stays
// alive regardless, so a transient failure does not silently detach the
// screen. The returned cancel blocks until the delivery goroutine exits,
// so after cancel returns no callback will fire against a destroyed view.
// Cancel is idempotent and safe to call after the hub itself has closed;
// a streaming handler may outlive shutdown and cancel late.
func (h *hub) subscribe(topic string, deliver func() error, onError func(error)) func() {
	sub := &subscriber{
		topic: topic,
		kick:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	sub.kick <- struct{}{} // initial snapshot

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return func() {}
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = sub
	h.mu.Unlock()

	go func() {
		defer close(sub.done)
		for {
			select {
			case <-sub.stop:
				return
			case <-sub.kick:
				if err := deliver(); err != nil && onError != nil {
					onError(err)
				}
			}
		}
	}()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
		sub.halt()
	}
}

// notify kicks every subscriber of topic. Non-blocking: a subscriber with
// a pending kick just coalesces.
func (h *hub) notify(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		if sub.topic != topic {
			continue
		}
		select {
		case sub.kick <- struct{}{}:
		default:
		}
	}
}

// close stops all subscribers and rejects future ones.
func (h *hub) close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[int]*subscriber)
	h.closed = true
	h.mu.Unlock()

	for _, sub := range subs {
		sub.halt()
	}
}
