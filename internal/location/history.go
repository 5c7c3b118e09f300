// Package location holds the browser's navigable address and broadcasts
// changes to it.
package location

import "sync"

// History is an in-process address bar with a back stack.
type History struct {
	mu        sync.RWMutex
	entries   []string
	nextID    int
	listeners map[int]func(string)
}

// New starts a history at address.
func New(address string) *History {
	return &History{
		entries:   []string{address},
		listeners: make(map[int]func(string)),
	}
}

// Current returns the address on top of the stack.
func (h *History) Current() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.entries[len(h.entries)-1]
}

// Navigate pushes address and notifies listeners. Navigating to the current
// address is a no-op.
func (h *History) Navigate(address string) {
	h.mu.Lock()
	if h.entries[len(h.entries)-1] == address {
		h.mu.Unlock()
		return
	}
	h.entries = append(h.entries, address)
	h.mu.Unlock()
	h.broadcast(address)
}

// Back pops the current address. It reports false at the first entry.
func (h *History) Back() bool {
	h.mu.Lock()
	if len(h.entries) < 2 {
		h.mu.Unlock()
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	address := h.entries[len(h.entries)-1]
	h.mu.Unlock()
	h.broadcast(address)
	return true
}

// Subscribe registers fn for every address change. Listeners run on the
// goroutine that changed the address and must not block.
func (h *History) Subscribe(fn func(address string)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

// Watch returns a channel that receives a ping after address changes. Pings
// are coalesced: a full channel skips the send and the reader re-reads
// Current. The stop function unsubscribes and closes the channel.
func (h *History) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	var mu sync.Mutex
	closed := false
	unsubscribe := h.Subscribe(func(string) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- struct{}{}:
		default:
		}
	})

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			unsubscribe()
			mu.Lock()
			closed = true
			close(ch)
			mu.Unlock()
		})
	}
}

func (h *History) broadcast(address string) {
	h.mu.RLock()
	fns := make([]func(string), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(address)
	}
}
